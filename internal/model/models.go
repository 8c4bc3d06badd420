package model

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Conference{},
		&Paper{},
		&Submission{},
		&AuthorInfo{},
		&PaperAssignment{},
		&PaperReview{},
		&Decision{},
		&PaperStatusHistory{},
		&AgendaItem{},
	}
}
