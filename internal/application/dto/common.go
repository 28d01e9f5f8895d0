package dto

// Envelope cuerpo común de todas las respuestas HTTP.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PageRequest paginación para listados (page es 1-based).
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize aplica valores por defecto y acota per_page a [1, max].
func (p *PageRequest) Normalize(defaultPerPage, maxPerPage int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset desplazamiento SQL correspondiente a la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageResponse metadatos de página en respuestas (forma de paginador clásico).
type PageResponse struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	LastPage    int  `json:"last_page"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// NewPageResponse calcula last_page, from y to para una página con count elementos.
func NewPageResponse(p PageRequest, total, count int) PageResponse {
	last := 1
	if total > 0 && p.PerPage > 0 {
		last = (total + p.PerPage - 1) / p.PerPage
	}
	out := PageResponse{CurrentPage: p.Page, PerPage: p.PerPage, Total: total, LastPage: last}
	if count > 0 {
		from := p.Offset() + 1
		to := p.Offset() + count
		out.From, out.To = &from, &to
	}
	return out
}
