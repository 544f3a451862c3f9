package profiling

import (
	"time"

	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

// Profiler constrói os perfis de saúde de clientes a partir de um snapshot
type Profiler interface {
	BuildProfiles(snapshot *domain.Snapshot, now time.Time) []*domain.CustomerHealthProfile
}

// ActionGenerator deriva a lista ranqueada de ações recomendadas do dia
type ActionGenerator interface {
	GenerateDailyActions(snapshot *domain.Snapshot, now time.Time) []*domain.SmartAction
}

// Intelligencer combina a construção de perfis e a geração de ações
type Intelligencer interface {
	Profiler
	ActionGenerator
}
