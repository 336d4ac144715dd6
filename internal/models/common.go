package models

// Pagination holds pagination parameters for list views.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPagination returns default pagination settings.
func DefaultPagination() Pagination {
	return Pagination{
		Page:     1,
		PageSize: 10,
	}
}

// Offset calculates the slice offset for the current page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		p.Page = 1
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size as limit.
func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return 10
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// TotalPages calculates the total number of pages.
func (p Pagination) TotalPages(total int) int {
	if p.PageSize <= 0 {
		return 1
	}
	pages := total / p.PageSize
	if total%p.PageSize > 0 {
		pages++
	}
	if pages < 1 {
		return 1
	}
	return pages
}

// PatientList is a paginated view of patients.
type PatientList struct {
	Patients   []*Patient
	Total      int
	Page       int
	TotalPages int
}

// Statistics is the snapshot of the global counters the shell renders.
type Statistics struct {
	Day        int
	Cured      int
	Deceased   int
	Reputation int

	// Live derived figures.
	Waiting       int // patients currently in the Waiting Room
	Critical      int // severity-3 patients anywhere in the hospital
	InDanger      int // severity-3 waiting patients one turn from death
	ActionsLeft   int
	QuotaLeft     int
	IntakeBacklog int
}
