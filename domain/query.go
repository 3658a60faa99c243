package domain

type PageQuery struct {
	From int    `form:"from"`
	Size int    `form:"size"`
	Word string `form:"word"`
}

// ModuleAccessQuery carries the opaque, URL encoded JSON filter and field
// parameters of a module access resolution. They are decoded inside the
// engine, not at the transport boundary.
type ModuleAccessQuery struct {
	ID      string `form:"id" binding:"required"`
	Filters string `form:"filters"`
	Fields  string `form:"fields"`
}
