package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-rankpredict/internal/contract"
	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
)

type operationView struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

type flowView struct {
	formspec.Flow
	Options operationView `json:"optionsEndpoint"`
	Predict operationView `json:"predictEndpoint"`
}

func main() {
	outputPath := flag.String("output", "", "output path (stdout if empty)")
	flag.Parse()

	ctx := context.Background()
	doc, err := contract.Load(ctx)
	if err != nil {
		log.Fatalf("load contract: %v", err)
	}
	store, err := formspec.Default()
	if err != nil {
		log.Fatalf("load flows: %v", err)
	}

	var flows []flowView
	for _, kind := range []model.FlowKind{model.FlowList, model.FlowSpecific} {
		flow, ok := store.Flow(kind)
		if !ok {
			log.Fatalf("flow %q missing", kind)
		}
		flows = append(flows, flowView{
			Flow:    flow,
			Options: resolve(doc, flow.OptionsOperation),
			Predict: resolve(doc, flow.PredictOperation),
		})
	}

	payload, err := json.MarshalIndent(flows, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	payload = append(payload, '\n')

	if *outputPath == "" {
		_, _ = os.Stdout.Write(payload)
		return
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outputPath, err)
	}
	fmt.Printf("Flows written to %s\n", *outputPath)
}

func resolve(doc *contract.Contract, id string) operationView {
	op, ok := doc.Operation(id)
	if !ok {
		log.Fatalf("operation %q not in contract", id)
	}
	return operationView{ID: op.ID, Method: op.Method, Path: op.Path}
}
