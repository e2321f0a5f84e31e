package domain

// DataSource identifica de onde veio o dado entregue ao chamador
type DataSource string

const (
	SourceStore    DataSource = "store"
	SourceFallback DataSource = "fallback"
)

// NotConnectedMessage é a mensagem fixa dos health checks quando não há cliente do banco
const NotConnectedMessage = "Not connected: store URL or access key is not configured"

// ReadStatus acompanha todo resultado de leitura e substitui o aviso via log do modo degradado.
// Available indica se o banco respondeu à consulta; Source indica a origem do dado.
type ReadStatus struct {
	Available bool       `json:"available"`
	Source    DataSource `json:"source"`
	Detail    string     `json:"detail,omitempty"`
}

// Degraded indica que o dado veio do fallback
func (s ReadStatus) Degraded() bool {
	return s.Source == SourceFallback
}

// MetricsConnectionReport é o resultado do health check das tabelas de métricas
type MetricsConnectionReport struct {
	Connected    bool   `json:"connected"`
	SummaryCount int64  `json:"summary_count"`
	DailyCount   int64  `json:"daily_count"`
	Error        string `json:"error,omitempty"`
}

// TargetingConnectionReport é o resultado do health check da tabela de inteligência de segmentação
type TargetingConnectionReport struct {
	Connected        bool   `json:"connected"`
	Count            int64  `json:"count"`
	LatestCompetitor string `json:"latest_competitor,omitempty"`
	Error            string `json:"error,omitempty"`
}
