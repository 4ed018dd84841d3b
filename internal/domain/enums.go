package domain

type Stage string

const (
	StageActive   Stage = "activo"
	StageFollowUp Stage = "seguimiento"
	StageClosed   Stage = "cerrado"
	StageInactive Stage = "inactivo"
	StageArchived Stage = "archivado"
)

// Stages is the ordered set of pipeline stages as shown on the board.
// Transitions are unrestricted: any stage can move to any other.
var Stages = []Stage{StageActive, StageFollowUp, StageClosed, StageInactive, StageArchived}

// DefaultStage is assigned when a contact is created without a status.
const DefaultStage = StageActive

// ValidStage reports whether s is one of the declared stage identifiers.
func ValidStage(s Stage) bool {
	for _, st := range Stages {
		if st == s {
			return true
		}
	}
	return false
}

type NeedType string

const (
	NeedBuy       NeedType = "compra"
	NeedSell      NeedType = "venta"
	NeedRent      NeedType = "alquiler"
	NeedRentOut   NeedType = "alquilar"
	NeedValuation NeedType = "valoracion"
)

type Source string

const (
	SourceWeb      Source = "web"
	SourcePortal   Source = "portal"
	SourceReferral Source = "referido"
	SourceSign     Source = "cartel"
	SourceOffice   Source = "oficina"
)

type Classification string

const (
	ClassHot  Classification = "caliente"
	ClassWarm Classification = "templado"
	ClassCold Classification = "frio"
)

type Role string

const (
	RoleAgent       Role = "agente"
	RoleCoordinator Role = "coordinador"
	RoleAdmin       Role = "admin"
)

// CanReadAllAgents reports whether the role may read rows across agents.
func (r Role) CanReadAllAgents() bool {
	return r == RoleCoordinator || r == RoleAdmin
}

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// ValidPeriodTypes is the canonical set of accepted period type strings.
var ValidPeriodTypes = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}
