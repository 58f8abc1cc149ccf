package models

// StageType is the semantic category of a pipeline stage.
// It drives the automatic flag derivation on stage transitions.
type StageType string

const (
	StageTypeSourced     StageType = "sourced"
	StageTypeShortlisted StageType = "shortlisted"
	StageTypeL1Interview StageType = "l1_interview"
	StageTypeL2Interview StageType = "l2_interview"
	StageTypeL3Interview StageType = "l3_interview"
	StageTypeTest        StageType = "test"
	StageTypeInterview   StageType = "interview"
	StageTypeSelected    StageType = "selected"
	StageTypeRejected    StageType = "rejected"
	StageTypeOnHold      StageType = "on-hold"
	StageTypeCancelled   StageType = "cancelled"
)

var stageTypeHumanName = map[StageType]string{
	StageTypeSourced:     "Sourced",
	StageTypeShortlisted: "Shortlisted",
	StageTypeL1Interview: "L1 Interview",
	StageTypeL2Interview: "L2 Interview",
	StageTypeL3Interview: "L3 Interview",
	StageTypeTest:        "Test",
	StageTypeInterview:   "Interview",
	StageTypeSelected:    "Selected",
	StageTypeRejected:    "Rejected",
	StageTypeOnHold:      "On Hold",
	StageTypeCancelled:   "Cancelled",
}

func (s StageType) ToHuman() string {
	if human, exist := stageTypeHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s StageType) IsValid() bool {
	_, exist := stageTypeHumanName[s]
	return exist
}

// StageRole is a role of an employee on a concrete stage.
type StageRole string

const (
	StageRoleManager     StageRole = "manager"
	StageRoleInterviewer StageRole = "interviewer"
)

// RecruitmentRole is a role of an employee on a recruitment campaign.
type RecruitmentRole string

const (
	RecruitmentRoleManager        RecruitmentRole = "manager"
	RecruitmentRoleDefaultManager RecruitmentRole = "default_stage_manager"
	RecruitmentRoleL1Interviewer  RecruitmentRole = "l1_interviewer"
	RecruitmentRoleL2Interviewer  RecruitmentRole = "l2_interviewer"
	RecruitmentRoleL3Interviewer  RecruitmentRole = "l3_interviewer"
)
