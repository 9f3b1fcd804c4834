package model

import "github.com/deppfellow/nutri-api/internal/validation"

// Role is the access profile of a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Sex as informed by the user.
type Sex string

const (
	SexMale   Sex = "MASCULINO"
	SexFemale Sex = "FEMININO"
)

// PhysicalActivity is the self-declared activity level.
type PhysicalActivity string

const (
	ActivitySedentary PhysicalActivity = "SEDENTARIO"
	ActivityModerate  PhysicalActivity = "MODERADO"
	ActivityIntense   PhysicalActivity = "INTENSO"
)

// Objective is the diet goal of a user.
type Objective string

const (
	ObjectiveLoseWeight Objective = "EMAGRECER"
	ObjectiveMaintain   Objective = "MANTER"
	ObjectiveGainMass   Objective = "GANHAR_MASSA"
)

// Validator tags of the allow-lists above.
const (
	TagRole             = "role"
	TagSex              = "sex"
	TagPhysicalActivity = "activity"
	TagObjective        = "objective"
)

var (
	Roles              = []Role{RoleAdmin, RoleUser}
	Sexes              = []Sex{SexMale, SexFemale}
	PhysicalActivities = []PhysicalActivity{ActivitySedentary, ActivityModerate, ActivityIntense}
	Objectives         = []Objective{ObjectiveLoseWeight, ObjectiveMaintain, ObjectiveGainMass}
)

func init() {
	validation.MustRegisterEnum(TagRole, Roles...)
	validation.MustRegisterEnum(TagSex, Sexes...)
	validation.MustRegisterEnum(TagPhysicalActivity, PhysicalActivities...)
	validation.MustRegisterEnum(TagObjective, Objectives...)
}

func (r Role) Valid() bool { return validation.InSet(r, Roles...) }

func (s Sex) Valid() bool { return validation.InSet(s, Sexes...) }

func (a PhysicalActivity) Valid() bool { return validation.InSet(a, PhysicalActivities...) }

func (o Objective) Valid() bool { return validation.InSet(o, Objectives...) }
