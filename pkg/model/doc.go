// Package model defines the values exchanged between the prediction flows:
// server-provided option sets, the raw form state read from a control
// surface, the tagged request/response variants sent to and received from the
// prediction service, and the RequestState enumeration a flow controller
// transitions through. Requests come in two shapes (RankCategoryRequest for
// the list flow and SpecificRequest for the specific flow) and so do
// responses (CollegeMatchList and SingleOutcome). Numeric request fields use
// Int so a value that failed to parse travels to the service as JSON null
// instead of silently becoming zero.
package model
