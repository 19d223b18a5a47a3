package request

// TicketListRequest represents ticket list filter parameters
type TicketListRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
