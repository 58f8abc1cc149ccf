package models

type OfferLetterStatus string

const (
	OfferLetterNotSent  OfferLetterStatus = "not_sent"
	OfferLetterSent     OfferLetterStatus = "sent"
	OfferLetterAccepted OfferLetterStatus = "accepted"
	OfferLetterRejected OfferLetterStatus = "rejected"
	OfferLetterJoined   OfferLetterStatus = "joined"
)

var offerLetterHumanName = map[OfferLetterStatus]string{
	OfferLetterNotSent:  "Not Sent",
	OfferLetterSent:     "Sent",
	OfferLetterAccepted: "Accepted",
	OfferLetterRejected: "Rejected",
	OfferLetterJoined:   "Joined",
}

func (s OfferLetterStatus) ToHuman() string {
	if human, exist := offerLetterHumanName[s]; exist {
		return human
	}
	return string(s)
}

// ApplicationSource describes how the application entered the system.
type ApplicationSource string

const (
	SourceApplicationForm ApplicationSource = "application"
	SourceSoftware        ApplicationSource = "software"
	SourceOther           ApplicationSource = "other"
)

// HistoryAction is the kind of an audit record on an application.
type HistoryAction string

const (
	HistoryActionCreated      HistoryAction = "created"
	HistoryActionStageChanged HistoryAction = "stage_changed"
	HistoryActionSequence     HistoryAction = "sequence_changed"
	HistoryActionCancelled    HistoryAction = "cancelled"
	HistoryActionConverted    HistoryAction = "converted"
	HistoryActionArchived     HistoryAction = "archived"
	HistoryActionUpdated      HistoryAction = "updated"
	HistoryActionNote         HistoryAction = "note"
)

const SystemUser = "System"
