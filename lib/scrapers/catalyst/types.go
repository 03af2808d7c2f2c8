package catalyst

// Ticket is the projection of one raw ticket record, everything else
// in the payload is dropped.
type Ticket struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Comment is the raw intercepted comment record. Only comments whose
// author matches the reviewer-agent identity survive extraction.
type Comment struct {
	Description string `json:"description"`
	CreatedBy   struct {
		Name string `json:"name"`
	} `json:"createdBy"`
}

// EnterpriseResult is one tenant's scrape outcome. A failed session
// still yields a result, just with no comments and Failed set, one
// tenant going dark must not take down the run.
type EnterpriseResult struct {
	Enterprise string
	Comments   []string
	Failed     bool
}
