package rankpredict

import (
	"github.com/goliatone/go-rankpredict/internal/contract"
	"github.com/goliatone/go-rankpredict/pkg/formspec"
)

// ContractDocument returns the OpenAPI description of the prediction service
// that controllers validate responses against.
func ContractDocument() []byte {
	return contract.Document()
}

// FlowDefinitions returns the embedded field definitions of both flows.
func FlowDefinitions() (*formspec.Store, error) {
	return formspec.Default()
}
