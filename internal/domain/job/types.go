package job

// Status is the job lifecycle state. Transitions between statuses go through
// ApplyStatusChange only.
type Status string

const (
	StatusPending        Status = "pending"
	StatusAssigned       Status = "assigned"
	StatusStarted        Status = "started"
	StatusCompleted      Status = "completed"
	StatusWithdrawBefore Status = "withdrawbefore24"
	StatusWithdrawAfter  Status = "withdrawafter24"
	StatusTimedOut       Status = "timedout"
	StatusNotCarriedOut  Status = "not_carried_out_customer"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusStarted, StatusCompleted,
		StatusWithdrawBefore, StatusWithdrawAfter, StatusTimedOut, StatusNotCarriedOut:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the lifecycle. Timedout is not
// terminal: admins can reopen or assign a timed-out booking.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusWithdrawBefore, StatusWithdrawAfter, StatusNotCarriedOut:
		return true
	default:
		return false
	}
}

// Type is the payment category of a job, derived from the customer's
// consumer type at creation and matched against the translator category.
type Type string

const (
	TypePaid   Type = "paid"
	TypeRWS    Type = "rws"
	TypeUnpaid Type = "unpaid"
)

func TypeForConsumer(consumerType string) Type {
	switch consumerType {
	case "rwsconsumer":
		return TypeRWS
	case "ngo":
		return TypeUnpaid
	default:
		return TypePaid
	}
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ServiceMode replaces the customer_phone_type/customer_physical_type flag
// pair. A physical-only job can only be taken by a translator in the
// customer's town; either-mode jobs fall back to phone.
type ServiceMode string

const (
	ModePhone    ServiceMode = "phone"
	ModePhysical ServiceMode = "physical"
	ModeEither   ServiceMode = "either"
)

// ServiceModeFromFlags collapses the legacy boolean matrix. Both flags unset
// was never reachable in the source system; it is treated as a phone job.
func ServiceModeFromFlags(phone, physical bool) ServiceMode {
	switch {
	case phone && physical:
		return ModeEither
	case physical:
		return ModePhysical
	default:
		return ModePhone
	}
}

func (m ServiceMode) AcceptsPhone() bool {
	return m == ModePhone || m == ModeEither
}

func (m ServiceMode) RequiresPresence() bool {
	return m == ModePhysical
}

// CertificationRequirement is the certification a customer asked for on a
// job. Empty means any level is acceptable.
type CertificationRequirement string

const (
	CertAny       CertificationRequirement = ""
	CertCertified CertificationRequirement = "yes"
	CertBoth      CertificationRequirement = "both"
	CertLaw       CertificationRequirement = "law"
	CertNLaw      CertificationRequirement = "n_law"
	CertHealth    CertificationRequirement = "health"
	CertNHealth   CertificationRequirement = "n_health"
	CertNormal    CertificationRequirement = "normal"
)

// ForOption is one entry of the booking form's "job for" selection.
type ForOption string

const (
	ForMale            ForOption = "male"
	ForFemale          ForOption = "female"
	ForNormal          ForOption = "normal"
	ForCertified       ForOption = "certified"
	ForCertifiedLaw    ForOption = "certified_in_law"
	ForCertifiedHealth ForOption = "certified_in_health"
)

// DeriveGender picks the gender requirement out of the job_for options.
func DeriveGender(opts []ForOption) *Gender {
	for _, o := range opts {
		switch o {
		case ForMale:
			g := GenderMale
			return &g
		case ForFemale:
			g := GenderFemale
			return &g
		}
	}
	return nil
}

// DeriveCertification maps the job_for options to a requirement. Combined
// normal+certified selections map to the "both"/"n_law"/"n_health" variants;
// the source system had these branches shadowed by an earlier exhaustive
// if/elseif, which is a latent bug we do not preserve.
func DeriveCertification(opts []ForOption) CertificationRequirement {
	has := func(want ForOption) bool {
		for _, o := range opts {
			if o == want {
				return true
			}
		}
		return false
	}

	normal := has(ForNormal)
	switch {
	case normal && has(ForCertified):
		return CertBoth
	case normal && has(ForCertifiedLaw):
		return CertNLaw
	case normal && has(ForCertifiedHealth):
		return CertNHealth
	case has(ForCertified):
		return CertCertified
	case has(ForCertifiedLaw):
		return CertLaw
	case has(ForCertifiedHealth):
		return CertHealth
	case normal:
		return CertNormal
	default:
		return CertAny
	}
}
