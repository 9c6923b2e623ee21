package pagination

const (
	// DefaultPageSize tamaño de página cuando no se indica.
	DefaultPageSize = 20
	// MaxPageSize tope de filas por página.
	MaxPageSize = 100
)

// Limits límites configurables de paginación.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits devuelve 20/100.
func DefaultLimits() Limits {
	return Limits{Default: DefaultPageSize, Max: MaxPageSize}
}

// Params página solicitada (1-based) y tamaño ya normalizados.
type Params struct {
	Page     int
	PageSize int
}

// Normalize aplica defaults y topes: page >= 1, 1 <= pageSize <= Max.
func (l Limits) Normalize(page, pageSize int) Params {
	def, max := l.Default, l.Max
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if def > max {
		def = max
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = def
	}
	if pageSize > max {
		pageSize = max
	}
	return Params{Page: page, PageSize: pageSize}
}

// Limit alias de PageSize para consultas SQL.
func (p Params) Limit() int { return p.PageSize }

// Offset filas a saltar.
func (p Params) Offset() int { return (p.Page - 1) * p.PageSize }

// Meta metadatos de página para las respuestas de listado.
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta calcula los metadatos a partir del total de filas.
func NewMeta(total int, p Params) Meta {
	pages := 0
	if p.PageSize > 0 {
		pages = (total + p.PageSize - 1) / p.PageSize
	}
	return Meta{
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
