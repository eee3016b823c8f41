package domain

// ScriptRequest is the input of script generation. Affiliate scripts promote
// the product with a call to action; organic scripts must not mention any
// product or link.
type ScriptRequest struct {
	Opportunity *Opportunity
	Style       string
	IsAffiliate bool
}

// Idea is a link-free topic derived from an affiliate opportunity.
type Idea struct {
	Title       string
	Description string
}
