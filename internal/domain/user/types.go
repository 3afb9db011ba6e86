package user

// Kind discriminates customers from translators. Identity is immutable;
// profile fields are maintained by the profile-management service and only
// read here.
type Kind string

const (
	KindCustomer   Kind = "customer"
	KindTranslator Kind = "translator"
)

// TranslatorCategory maps onto the job payment type a translator may take.
type TranslatorCategory string

const (
	CategoryProfessional TranslatorCategory = "professional"
	CategoryRWS          TranslatorCategory = "rwstranslator"
	CategoryVolunteer    TranslatorCategory = "volunteer"
)

// CertificationLevel is a translator's attained qualification.
type CertificationLevel string

const (
	LevelCertified       CertificationLevel = "certified"
	LevelCertifiedLaw    CertificationLevel = "certified_law"
	LevelCertifiedHealth CertificationLevel = "certified_health"
	LevelLayman          CertificationLevel = "layman"
	LevelReadCourses     CertificationLevel = "read_courses"
)

func (l CertificationLevel) IsValid() bool {
	switch l {
	case LevelCertified, LevelCertifiedLaw, LevelCertifiedHealth, LevelLayman, LevelReadCourses:
		return true
	default:
		return false
	}
}

// NotificationPrefs are the per-user opt-outs the dispatcher honors.
type NotificationPrefs struct {
	NoPush      bool // not_get_notification: never push
	NoEmergency bool // not_get_emergency: skip immediate-job pushes
	NoNightTime bool // not_get_nighttime: defer quiet-hour pushes
}
