package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Push and SMS bodies are Swedish. The push gateway keys localized contents
// by language tag and the legacy apps only ever read the "en" slot, so the
// dispatcher keeps sending Swedish text under that key.

const contentsKey = "en"

const pushTitle = "Tolkbokning"

func jobCreatedText(j JobInfo) string {
	if j.Immediate {
		return fmt.Sprintf("Ny akutbokning för %s tolk %dmin", j.Language, j.Duration)
	}
	return fmt.Sprintf("Ny bokning för %s tolk %dmin %s", j.Language, j.Duration, formatDue(j.Due))
}

func jobAcceptedText(j JobInfo) string {
	return fmt.Sprintf(
		"Din bokning för %s translators, %dmin, %s har accepterats av en tolk. Vänligen öppna appen för att se detaljer om tolken.",
		j.Language, j.Duration, formatDue(j.Due))
}

func jobAssignedText(j JobInfo) string {
	kind := "telefontolkningen"
	if j.Physical {
		kind = "platstolkningen"
	}
	return fmt.Sprintf(
		"Du har nu fått %s för %s kl %d den %s. Vänligen säkerställ att du är förberedd för den tiden. Tack!",
		kind, j.Language, j.Duration, formatDue(j.Due))
}

func cancelledByCustomerText(j JobInfo) string {
	return fmt.Sprintf(
		"Kunden har avbokat bokningen för %stolk, %dmin, %s. Var god och kolla dina tidigare bokningar för detaljer.",
		j.Language, j.Duration, formatDue(j.Due))
}

func cancelledByTranslatorText(j JobInfo) string {
	return fmt.Sprintf(
		"Er %stolk, %dmin %s, har avbokat tolkningen. Vi letar nu efter en ny tolk som kan ersätta denne. Tack.",
		j.Language, j.Duration, formatDue(j.Due))
}

func jobExpiredText(j JobInfo) string {
	return fmt.Sprintf(
		"Tyvärr har ingen tolk accepterat er bokning: (%s, %dmin, %s). Vänligen pröva boka om tiden.",
		j.Language, j.Duration, formatDue(j.Due))
}

func sessionReminderText(j JobInfo) string {
	sessionType := "telefon"
	if j.Physical {
		sessionType = "på plats i " + j.Town
	}
	return fmt.Sprintf(
		"Detta är en påminnelse om att du har en %s tolkning (%s) kl %s på %s som varar i %d min. Lycka till och kom ihåg att ge feedback efter utförd tolkning!",
		j.Language, sessionType, j.Due.Format("15:04:05"), j.Due.Format("2006-01-02"), j.Duration)
}

func phoneJobSMS(j JobInfo, durationText string) string {
	return fmt.Sprintf(
		"Ny telefontolkning %s kl %s, %s. Se uppdrag %s i appen för detaljer och för att acceptera.",
		j.Due.Format("02.01.2006"), j.Due.Format("15:04"), durationText, j.ID)
}

func physicalJobSMS(j JobInfo, durationText string) string {
	return fmt.Sprintf(
		"Ny platstolkning %s kl %s i %s, %s. Se uppdrag %s i appen för detaljer och för att acceptera.",
		j.Due.Format("02.01.2006"), j.Due.Format("15:04"), j.Town, durationText, j.ID)
}

func acceptedSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Bekräftelse - tolk har accepterat er bokning (bokning # %s)", jobID)
}

func bookingReceivedSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Vi har mottagit er tolkbokning. Bokningsnr: # %s", jobID)
}

func sessionEndedSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Information om avslutad tolkning för bokningsnummer # %s", jobID)
}

func bookingChangedSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Meddelande om ändring av tolkbokning för uppdrag # %s", jobID)
}

func translatorChangedSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Meddelande om tilldelning av tolkuppdrag för uppdrag # %s", jobID)
}

func cancellationSubject(jobID uuid.UUID) string {
	return fmt.Sprintf("Avbokning av bokningsnr: # %s", jobID)
}

func formatDue(due time.Time) string {
	return due.Format("2006-01-02 15:04:05")
}

// formatDurationText renders minutes the way the SMS templates expect,
// e.g. "90 min" stays short while "1 tim 30 min" reads naturally.
func formatDurationText(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d tim", h)
	}
	return fmt.Sprintf("%d tim %d min", h, m)
}
