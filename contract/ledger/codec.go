package ledger

import (
	"github.com/CosmWasm/tinyjson/jlexer"
	"github.com/CosmWasm/tinyjson/jwriter"

	"medfund_ledger/sdk"
)

// Marshaler is implemented by every persisted record.
type Marshaler interface {
	MarshalTinyJSON(w *jwriter.Writer)
}

// Unmarshaler is the decoding half of Marshaler.
type Unmarshaler interface {
	UnmarshalTinyJSON(l *jlexer.Lexer)
}

// Encode serializes a record into its stored form.
func Encode(v Marshaler) ([]byte, error) {
	w := jwriter.Writer{}
	v.MarshalTinyJSON(&w)
	return w.BuildBytes()
}

// Decode parses a stored record into v.
func Decode(data []byte, v Unmarshaler) error {
	l := jlexer.Lexer{Data: data}
	v.UnmarshalTinyJSON(&l)
	l.Consumed()
	return l.Error()
}

// objWriter writes one json object field by field.
type objWriter struct {
	w       *jwriter.Writer
	started bool
}

func beginObject(w *jwriter.Writer) *objWriter {
	w.RawByte('{')
	return &objWriter{w: w}
}

func (o *objWriter) end() { o.w.RawByte('}') }

func (o *objWriter) key(k string) {
	if o.started {
		o.w.RawByte(',')
	}
	o.started = true
	o.w.String(k)
	o.w.RawByte(':')
}

func (o *objWriter) u64(k string, v uint64) {
	o.key(k)
	o.w.Uint64(v)
}

func (o *objWriter) str(k, v string) {
	o.key(k)
	o.w.String(v)
}

func (o *objWriter) boolean(k string, v bool) {
	o.key(k)
	o.w.Bool(v)
}

func (o *objWriter) id(k string, v ID) { o.str(k, v.String()) }

func (o *objWriter) addr(k string, v sdk.Address) { o.str(k, v.String()) }

func (o *objWriter) strs(k string, v []string) {
	o.key(k)
	o.w.RawByte('[')
	for i, s := range v {
		if i > 0 {
			o.w.RawByte(',')
		}
		o.w.String(s)
	}
	o.w.RawByte(']')
}

// decodeObject walks an object and hands every non-null field to fn.
// fn must consume the value or call l.SkipRecursive.
func decodeObject(l *jlexer.Lexer, fn func(key string)) {
	if l.IsNull() {
		l.Skip()
		return
	}
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.String()
		l.WantColon()
		if l.IsNull() {
			l.Skip()
			l.WantComma()
			continue
		}
		fn(key)
		l.WantComma()
	}
	l.Delim('}')
}

func lexID(l *jlexer.Lexer) ID {
	id, err := ParseID(l.String())
	if err != nil {
		l.AddError(err)
	}
	return id
}

func lexAddr(l *jlexer.Lexer) sdk.Address { return sdk.Address(l.String()) }

func lexStrings(l *jlexer.Lexer) []string {
	var out []string
	l.Delim('[')
	for !l.IsDelim(']') {
		out = append(out, l.String())
		l.WantComma()
	}
	l.Delim(']')
	return out
}

// lexEnum decodes an enum by name via parse.
func lexEnum[T ~uint8](l *jlexer.Lexer, parse func(string) (T, bool)) T {
	s := l.String()
	v, ok := parse(s)
	if !ok {
		l.AddError(&jlexer.LexerError{Reason: "unknown enum value", Data: s})
	}
	return v
}

func (c PlatformConfig) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.addr("admin", c.Admin)
	o.u64("fee_bp", c.FeeBp)
	o.u64("reward_bp", c.RewardBp)
	o.u64("exchange_rate", c.ExchangeRate)
	o.u64("min_donation", c.MinDonation)
	o.u64("max_campaign_duration_days", c.MaxCampaignDurationDays)
	o.boolean("kyc_required", c.KYCRequired)
	o.boolean("emergency_pause", c.EmergencyPause)
	o.str("spei_config", c.SpeiConfig)
	o.u64("initialized_at", c.InitializedAt)
	o.end()
}

func (c *PlatformConfig) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "admin":
			c.Admin = lexAddr(l)
		case "fee_bp":
			c.FeeBp = l.Uint64()
		case "reward_bp":
			c.RewardBp = l.Uint64()
		case "exchange_rate":
			c.ExchangeRate = l.Uint64()
		case "min_donation":
			c.MinDonation = l.Uint64()
		case "max_campaign_duration_days":
			c.MaxCampaignDurationDays = l.Uint64()
		case "kyc_required":
			c.KYCRequired = l.Bool()
		case "emergency_pause":
			c.EmergencyPause = l.Bool()
		case "spei_config":
			c.SpeiConfig = l.String()
		case "initialized_at":
			c.InitializedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (c Campaign) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", c.ID)
	o.addr("beneficiary", c.Beneficiary)
	o.str("title", c.Title)
	o.str("description", c.Description)
	o.str("medical_condition", c.MedicalCondition)
	o.str("category", c.Category)
	o.str("location", c.Location)
	o.str("spei_account", c.SpeiAccount)
	o.str("urgency", c.Urgency.String())
	o.u64("goal_amount", c.GoalAmount)
	o.u64("current_amount", c.CurrentAmount)
	o.u64("withdrawn_amount", c.WithdrawnAmount)
	o.u64("exchange_rate", c.ExchangeRate)
	o.u64("start_time", c.StartTime)
	o.u64("end_time", c.EndTime)
	o.u64("proof_deadline", c.ProofDeadline)
	o.boolean("verified", c.Verified)
	o.boolean("kyc_verified", c.KYCVerified)
	o.boolean("medical_docs_verified", c.MedicalDocsVerified)
	o.boolean("funds_locked", c.FundsLocked)
	o.boolean("emergency_paused", c.EmergencyPaused)
	o.boolean("goal_reached", c.GoalReached)
	o.u64("total_donations", c.TotalDonations)
	o.u64("platform_fees", c.PlatformFees)
	o.u64("staking_rewards", c.StakingRewards)
	o.u64("late_proofs", c.LateProofs)
	o.end()
}

func (c *Campaign) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			c.ID = lexID(l)
		case "beneficiary":
			c.Beneficiary = lexAddr(l)
		case "title":
			c.Title = l.String()
		case "description":
			c.Description = l.String()
		case "medical_condition":
			c.MedicalCondition = l.String()
		case "category":
			c.Category = l.String()
		case "location":
			c.Location = l.String()
		case "spei_account":
			c.SpeiAccount = l.String()
		case "urgency":
			c.Urgency = lexEnum(l, ParseUrgency)
		case "goal_amount":
			c.GoalAmount = l.Uint64()
		case "current_amount":
			c.CurrentAmount = l.Uint64()
		case "withdrawn_amount":
			c.WithdrawnAmount = l.Uint64()
		case "exchange_rate":
			c.ExchangeRate = l.Uint64()
		case "start_time":
			c.StartTime = l.Uint64()
		case "end_time":
			c.EndTime = l.Uint64()
		case "proof_deadline":
			c.ProofDeadline = l.Uint64()
		case "verified":
			c.Verified = l.Bool()
		case "kyc_verified":
			c.KYCVerified = l.Bool()
		case "medical_docs_verified":
			c.MedicalDocsVerified = l.Bool()
		case "funds_locked":
			c.FundsLocked = l.Bool()
		case "emergency_paused":
			c.EmergencyPaused = l.Bool()
		case "goal_reached":
			c.GoalReached = l.Bool()
		case "total_donations":
			c.TotalDonations = l.Uint64()
		case "platform_fees":
			c.PlatformFees = l.Uint64()
		case "staking_rewards":
			c.StakingRewards = l.Uint64()
		case "late_proofs":
			c.LateProofs = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (d Donation) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", d.ID)
	o.id("campaign_id", d.CampaignID)
	o.addr("donor", d.Donor)
	o.u64("amount", d.Amount)
	o.u64("gross_amount", d.GrossAmount)
	o.u64("peso_amount", d.PesoAmount)
	o.u64("platform_fee", d.PlatformFee)
	o.u64("staking_reward", d.StakingReward)
	o.u64("timestamp", d.Timestamp)
	o.boolean("anonymous", d.Anonymous)
	if !d.NFTID.IsZero() {
		o.id("nft_id", d.NFTID)
	}
	o.str("external_ref", d.ExternalRef)
	o.boolean("refunded", d.Refunded)
	o.u64("refunded_at", d.RefundedAt)
	o.end()
}

func (d *Donation) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			d.ID = lexID(l)
		case "campaign_id":
			d.CampaignID = lexID(l)
		case "donor":
			d.Donor = lexAddr(l)
		case "amount":
			d.Amount = l.Uint64()
		case "gross_amount":
			d.GrossAmount = l.Uint64()
		case "peso_amount":
			d.PesoAmount = l.Uint64()
		case "platform_fee":
			d.PlatformFee = l.Uint64()
		case "staking_reward":
			d.StakingReward = l.Uint64()
		case "timestamp":
			d.Timestamp = l.Uint64()
		case "anonymous":
			d.Anonymous = l.Bool()
		case "nft_id":
			d.NFTID = lexID(l)
		case "external_ref":
			d.ExternalRef = l.String()
		case "refunded":
			d.Refunded = l.Bool()
		case "refunded_at":
			d.RefundedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (k KYCRecord) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.addr("entity", k.Entity)
	o.str("curp", k.CURP)
	o.str("full_name", k.FullName)
	o.str("phone", k.Phone)
	o.str("email", k.Email)
	o.str("postal_address", k.PostalAddress)
	o.str("birth_date", k.BirthDate)
	o.str("nationality", k.Nationality)
	o.str("medical_license", k.MedicalLicense)
	o.str("institution", k.Institution)
	o.str("rfc", k.RFC)
	o.str("bank_account", k.BankAccount)
	o.str("spei_clabe", k.SpeiClabe)
	o.str("level", k.Level.String())
	o.u64("verified_at", k.VerifiedAt)
	o.u64("expires_at", k.ExpiresAt)
	o.boolean("wallet_connected", k.WalletConnected)
	o.end()
}

func (k *KYCRecord) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "entity":
			k.Entity = lexAddr(l)
		case "curp":
			k.CURP = l.String()
		case "full_name":
			k.FullName = l.String()
		case "phone":
			k.Phone = l.String()
		case "email":
			k.Email = l.String()
		case "postal_address":
			k.PostalAddress = l.String()
		case "birth_date":
			k.BirthDate = l.String()
		case "nationality":
			k.Nationality = l.String()
		case "medical_license":
			k.MedicalLicense = l.String()
		case "institution":
			k.Institution = l.String()
		case "rfc":
			k.RFC = l.String()
		case "bank_account":
			k.BankAccount = l.String()
		case "spei_clabe":
			k.SpeiClabe = l.String()
		case "level":
			k.Level = lexEnum(l, ParseKYCLevel)
		case "verified_at":
			k.VerifiedAt = l.Uint64()
		case "expires_at":
			k.ExpiresAt = l.Uint64()
		case "wallet_connected":
			k.WalletConnected = l.Bool()
		default:
			l.SkipRecursive()
		}
	})
}

func (t TrustScore) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.addr("entity", t.Entity)
	o.u64("score", t.Score)
	o.str("level", t.Level.String())
	o.str("tier", t.Tier().String())
	o.u64("campaigns_created", t.CampaignsCreated)
	o.u64("donations_made", t.DonationsMade)
	o.u64("total_donated", t.TotalDonated)
	o.u64("medical_docs_submitted", t.MedicalDocsSubmitted)
	o.u64("docs_verified", t.DocsVerified)
	o.u64("fraud_reports", t.FraudReports)
	o.u64("late_proofs", t.LateProofs)
	o.u64("updated_at", t.UpdatedAt)
	o.end()
}

// UnmarshalTinyJSON ignores the stored tier, it is always recomputed from the score.
func (t *TrustScore) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "entity":
			t.Entity = lexAddr(l)
		case "score":
			t.Score = l.Uint64()
		case "level":
			t.Level = lexEnum(l, ParseKYCLevel)
		case "campaigns_created":
			t.CampaignsCreated = l.Uint64()
		case "donations_made":
			t.DonationsMade = l.Uint64()
		case "total_donated":
			t.TotalDonated = l.Uint64()
		case "medical_docs_submitted":
			t.MedicalDocsSubmitted = l.Uint64()
		case "docs_verified":
			t.DocsVerified = l.Uint64()
		case "fraud_reports":
			t.FraudReports = l.Uint64()
		case "late_proofs":
			t.LateProofs = l.Uint64()
		case "updated_at":
			t.UpdatedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (n DynamicNFT) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", n.ID)
	o.addr("owner", n.Owner)
	o.id("campaign_id", n.CampaignID)
	o.u64("total_donated", n.TotalDonated)
	o.u64("donation_count", n.DonationCount)
	o.str("growth_stage", n.Stage.String())
	o.strs("achievements", n.Achievements)
	o.u64("minted_at", n.MintedAt)
	o.u64("updated_at", n.UpdatedAt)
	o.end()
}

func (n *DynamicNFT) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			n.ID = lexID(l)
		case "owner":
			n.Owner = lexAddr(l)
		case "campaign_id":
			n.CampaignID = lexID(l)
		case "total_donated":
			n.TotalDonated = l.Uint64()
		case "donation_count":
			n.DonationCount = l.Uint64()
		case "growth_stage":
			n.Stage = lexEnum(l, ParseGrowthStage)
		case "achievements":
			n.Achievements = lexStrings(l)
		case "minted_at":
			n.MintedAt = l.Uint64()
		case "updated_at":
			n.UpdatedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (p StakingPool) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", p.ID)
	o.u64("apy", p.APY)
	o.u64("lock_period", p.LockPeriod)
	o.u64("min_stake", p.MinStake)
	o.u64("max_stake", p.MaxStake)
	o.u64("total_staked", p.TotalStaked)
	o.u64("participants", p.Participants)
	o.u64("total_rewards", p.TotalRewards)
	o.boolean("active", p.Active)
	o.u64("created_at", p.CreatedAt)
	o.end()
}

func (p *StakingPool) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			p.ID = lexID(l)
		case "apy":
			p.APY = l.Uint64()
		case "lock_period":
			p.LockPeriod = l.Uint64()
		case "min_stake":
			p.MinStake = l.Uint64()
		case "max_stake":
			p.MaxStake = l.Uint64()
		case "total_staked":
			p.TotalStaked = l.Uint64()
		case "participants":
			p.Participants = l.Uint64()
		case "total_rewards":
			p.TotalRewards = l.Uint64()
		case "active":
			p.Active = l.Bool()
		case "created_at":
			p.CreatedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (p StakingPosition) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.addr("staker", p.Staker)
	o.id("pool_id", p.PoolID)
	o.u64("staked_amount", p.StakedAmount)
	o.u64("staked_at", p.StakedAt)
	o.u64("unlock_time", p.UnlockTime)
	o.end()
}

func (p *StakingPosition) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "staker":
			p.Staker = lexAddr(l)
		case "pool_id":
			p.PoolID = lexID(l)
		case "staked_amount":
			p.StakedAmount = l.Uint64()
		case "staked_at":
			p.StakedAt = l.Uint64()
		case "unlock_time":
			p.UnlockTime = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (s PlatformStats) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.u64("total_campaigns", s.TotalCampaigns)
	o.u64("active_campaigns", s.ActiveCampaigns)
	o.u64("successful_campaigns", s.SuccessfulCampaigns)
	o.u64("total_donations", s.TotalDonations)
	o.u64("total_raised_base", s.TotalRaisedBase)
	o.u64("total_raised_secondary", s.TotalRaisedSecondary)
	o.u64("total_fees_collected", s.TotalFeesCollected)
	o.u64("staking_rewards_distributed", s.StakingRewardsDistributed)
	o.u64("total_users", s.TotalUsers)
	o.u64("kyc_verified_users", s.KYCVerifiedUsers)
	o.u64("total_refunds", s.TotalRefunds)
	o.u64("total_withdrawn", s.TotalWithdrawn)
	o.u64("total_staked", s.TotalStaked)
	o.end()
}

func (s *PlatformStats) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "total_campaigns":
			s.TotalCampaigns = l.Uint64()
		case "active_campaigns":
			s.ActiveCampaigns = l.Uint64()
		case "successful_campaigns":
			s.SuccessfulCampaigns = l.Uint64()
		case "total_donations":
			s.TotalDonations = l.Uint64()
		case "total_raised_base":
			s.TotalRaisedBase = l.Uint64()
		case "total_raised_secondary":
			s.TotalRaisedSecondary = l.Uint64()
		case "total_fees_collected":
			s.TotalFeesCollected = l.Uint64()
		case "staking_rewards_distributed":
			s.StakingRewardsDistributed = l.Uint64()
		case "total_users":
			s.TotalUsers = l.Uint64()
		case "kyc_verified_users":
			s.KYCVerifiedUsers = l.Uint64()
		case "total_refunds":
			s.TotalRefunds = l.Uint64()
		case "total_withdrawn":
			s.TotalWithdrawn = l.Uint64()
		case "total_staked":
			s.TotalStaked = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (m MedicalDocument) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", m.ID)
	o.id("campaign_id", m.CampaignID)
	o.addr("submitter", m.Submitter)
	o.str("doc_type", m.DocType.String())
	o.str("doc_hash", m.DocHash)
	o.str("description", m.Description)
	o.str("urgency", m.Urgency.String())
	o.str("status", m.Status.String())
	o.u64("submitted_at", m.SubmittedAt)
	o.u64("reviewed_at", m.ReviewedAt)
	o.addr("reviewer", m.Reviewer)
	o.str("notes", m.Notes)
	o.end()
}

func (m *MedicalDocument) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			m.ID = lexID(l)
		case "campaign_id":
			m.CampaignID = lexID(l)
		case "submitter":
			m.Submitter = lexAddr(l)
		case "doc_type":
			m.DocType = lexEnum(l, ParseDocType)
		case "doc_hash":
			m.DocHash = l.String()
		case "description":
			m.Description = l.String()
		case "urgency":
			m.Urgency = lexEnum(l, ParseUrgency)
		case "status":
			m.Status = lexEnum(l, ParseDocStatus)
		case "submitted_at":
			m.SubmittedAt = l.Uint64()
		case "reviewed_at":
			m.ReviewedAt = l.Uint64()
		case "reviewer":
			m.Reviewer = lexAddr(l)
		case "notes":
			m.Notes = l.String()
		default:
			l.SkipRecursive()
		}
	})
}

func (r RemittanceTransfer) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.id("id", r.ID)
	o.id("donation_id", r.DonationID)
	o.id("campaign_id", r.CampaignID)
	o.str("reference", r.Reference)
	o.u64("peso_amount", r.PesoAmount)
	o.str("status", r.Status.String())
	o.str("confirmation", r.Confirmation)
	o.u64("created_at", r.CreatedAt)
	o.u64("updated_at", r.UpdatedAt)
	o.end()
}

func (r *RemittanceTransfer) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "id":
			r.ID = lexID(l)
		case "donation_id":
			r.DonationID = lexID(l)
		case "campaign_id":
			r.CampaignID = lexID(l)
		case "reference":
			r.Reference = l.String()
		case "peso_amount":
			r.PesoAmount = l.Uint64()
		case "status":
			r.Status = lexEnum(l, ParseTransferStatus)
		case "confirmation":
			r.Confirmation = l.String()
		case "created_at":
			r.CreatedAt = l.Uint64()
		case "updated_at":
			r.UpdatedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

func (c WalletConnection) MarshalTinyJSON(w *jwriter.Writer) {
	o := beginObject(w)
	o.addr("owner", c.Owner)
	o.str("wallet_type", c.WalletType.String())
	o.str("public_key", c.PublicKey)
	o.strs("permissions", c.Permissions)
	o.u64("connected_at", c.ConnectedAt)
	o.end()
}

func (c *WalletConnection) UnmarshalTinyJSON(l *jlexer.Lexer) {
	decodeObject(l, func(key string) {
		switch key {
		case "owner":
			c.Owner = lexAddr(l)
		case "wallet_type":
			c.WalletType = lexEnum(l, ParseWalletType)
		case "public_key":
			c.PublicKey = l.String()
		case "permissions":
			c.Permissions = lexStrings(l)
		case "connected_at":
			c.ConnectedAt = l.Uint64()
		default:
			l.SkipRecursive()
		}
	})
}

// roster is the encoded form of a role allow-list.
type roster []sdk.Address

func (r roster) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, a := range r {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(a.String())
	}
	w.RawByte(']')
}

func (r *roster) UnmarshalTinyJSON(l *jlexer.Lexer) {
	for _, s := range lexStrings(l) {
		*r = append(*r, sdk.Address(s))
	}
}

// EncodeAddresses serializes an allow-list.
func EncodeAddresses(list []sdk.Address) ([]byte, error) {
	return Encode(roster(list))
}

// DecodeAddresses parses an allow-list written by EncodeAddresses.
func DecodeAddresses(data []byte) ([]sdk.Address, error) {
	var r roster
	if err := Decode(data, &r); err != nil {
		return nil, err
	}
	return []sdk.Address(r), nil
}

// EncodeIDs serializes an index chunk.
func EncodeIDs(ids []ID) ([]byte, error) {
	w := jwriter.Writer{}
	w.RawByte('[')
	for i, id := range ids {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(id.String())
	}
	w.RawByte(']')
	return w.BuildBytes()
}

// DecodeIDs parses an index chunk written by EncodeIDs.
func DecodeIDs(data []byte) ([]ID, error) {
	l := jlexer.Lexer{Data: data}
	var ids []ID
	l.Delim('[')
	for !l.IsDelim(']') {
		ids = append(ids, lexID(&l))
		l.WantComma()
	}
	l.Delim(']')
	l.Consumed()
	return ids, l.Error()
}
