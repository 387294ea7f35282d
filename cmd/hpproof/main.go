// Copyright 2026 Contributors to the evidenceops project.
// SPDX-License-Identifier: Apache-2.0

// hpproof drives the Hyperproof evidence API from the command line.
//
// Each invocation runs a single operation selected with -op, prints the
// resource returned by the server as indented JSON on stdout, and reports
// diagnostics on stderr. The exit status is zero only when the operation
// succeeded.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/evidenceops/hyperproof-apiclient/common"
	"github.com/evidenceops/hyperproof-apiclient/config"
	"github.com/evidenceops/hyperproof-apiclient/controls"
	"github.com/evidenceops/hyperproof-apiclient/labels"
	"github.com/evidenceops/hyperproof-apiclient/proof"
	"go.uber.org/zap"
)

var (
	opFlag = flag.String("op", "", "operation to run: list-controls, add-proof, "+
		"add-version, control-proof, label-proof, create-label or link-label")
	fileFlag        = flag.String("file", "", "path of the evidence file to upload")
	controlFlag     = flag.String("control", "", "control id")
	proofFlag       = flag.String("proof", "", "proof id")
	labelFlag       = flag.String("label", "", "label id")
	nameFlag        = flag.String("name", "", "name of the label to create")
	descFlag        = flag.String("desc", "", "description of the label to create")
	contentTypeFlag = flag.String("content-type", "", "explicit media type of the uploaded file")
	objectIDFlag    = flag.String("object-id", "", "id of the object to attach a bare proof to")
	objectTypeFlag  = flag.String("object-type", "", "type of the object to attach a bare proof to")
	envFlag         = flag.String("env", "", "path of the env file with the API credentials")
)

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load(*envFlag)
	if err != nil {
		logger.Fatal("configuration failed", zap.Error(err))
	}

	out, err := run(cfg, logger)
	if err != nil {
		logger.Fatal("operation failed", zap.String("op", *opFlag), zap.Error(err))
	}

	if out != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(out); err != nil {
			logger.Fatal("could not render result", zap.Error(err))
		}
	}
}

func run(cfg *config.Config, logger *zap.Logger) (interface{}, error) {
	client, err := cfg.Client()
	if err != nil {
		return nil, err
	}

	switch *opFlag {
	case "list-controls":
		service, err := controlsService(cfg, client)
		if err != nil {
			return nil, err
		}

		cs, err := service.List()
		if err != nil {
			return nil, err
		}

		logger.Info("controls fetched", zap.Int("count", len(cs)))

		return cs, nil

	case "add-proof":
		service, err := proofService(cfg, client)
		if err != nil {
			return nil, err
		}

		var object *proof.ObjectRef
		if *objectIDFlag != "" || *objectTypeFlag != "" {
			object = &proof.ObjectRef{ID: *objectIDFlag, Type: *objectTypeFlag}
		}

		p, err := service.Add(*fileFlag, *contentTypeFlag, object)
		if err != nil {
			return nil, err
		}

		logger.Info("proof uploaded",
			zap.String("id", p.ID.String()), zap.String("file", *fileFlag))

		return p, nil

	case "add-version":
		service, err := proofService(cfg, client)
		if err != nil {
			return nil, err
		}

		p, err := service.AddVersion(*proofFlag, *fileFlag, *contentTypeFlag)
		if err != nil {
			return nil, err
		}

		logger.Info("proof version uploaded",
			zap.String("id", p.ID.String()), zap.Int("version", p.Version))

		return p, nil

	case "control-proof":
		service, err := controlsService(cfg, client)
		if err != nil {
			return nil, err
		}

		p, err := service.AddProof(*controlFlag, *fileFlag, *contentTypeFlag)
		if err != nil {
			return nil, err
		}

		logger.Info("proof attached to control",
			zap.String("control", *controlFlag), zap.String("id", p.ID.String()))

		return p, nil

	case "label-proof":
		service, err := labelsService(cfg, client)
		if err != nil {
			return nil, err
		}

		p, err := service.AddProof(*labelFlag, *fileFlag, *contentTypeFlag)
		if err != nil {
			return nil, err
		}

		logger.Info("proof attached to label",
			zap.String("label", *labelFlag), zap.String("id", p.ID.String()))

		return p, nil

	case "create-label":
		service, err := labelsService(cfg, client)
		if err != nil {
			return nil, err
		}

		label, err := service.Create(*nameFlag, *descFlag)
		if err != nil {
			return nil, err
		}

		logger.Info("label created",
			zap.String("id", label.ID.String()), zap.String("name", label.Name))

		return label, nil

	case "link-label":
		service, err := controlsService(cfg, client)
		if err != nil {
			return nil, err
		}

		if err := service.LinkLabel(*controlFlag, *labelFlag); err != nil {
			return nil, err
		}

		logger.Info("label linked to control",
			zap.String("control", *controlFlag), zap.String("label", *labelFlag))

		return nil, nil

	case "":
		flag.Usage()
		return nil, errors.New("no operation supplied")

	default:
		return nil, fmt.Errorf("unexpected operation %q", *opFlag)
	}
}

func controlsService(cfg *config.Config, client *common.Client) (*controls.Service, error) {
	service, err := controls.NewService(cfg.ControlsURI(), nil)
	if err != nil {
		return nil, err
	}

	if err := service.SetClient(client); err != nil {
		return nil, err
	}

	return service, nil
}

func proofService(cfg *config.Config, client *common.Client) (*proof.Service, error) {
	service, err := proof.NewService(cfg.ProofURI(), nil)
	if err != nil {
		return nil, err
	}

	if err := service.SetClient(client); err != nil {
		return nil, err
	}

	return service, nil
}

func labelsService(cfg *config.Config, client *common.Client) (*labels.Service, error) {
	service, err := labels.NewService(cfg.LabelsURI(), nil)
	if err != nil {
		return nil, err
	}

	if err := service.SetClient(client); err != nil {
		return nil, err
	}

	return service, nil
}
