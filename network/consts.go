package network

import (
	"errors"
	"time"
)

const (
	evmDecimals = 18

	txStatusPending = "pending"
	txStatusSuccess = "success"

	defaultPollInterval = 2 * time.Second
	maxIndexerErrors    = 5
)

var (
	errEmptyResponse   = errors.New("empty response")
	errInvalidResponse = errors.New("invalid result")
	errInvalidAddress  = errors.New("invalid contract address")
	errUnknownNetwork  = errors.New("unknown network kind")
	errReadOnly        = errors.New("contract handle is read only")
	errNotIndexed      = errors.New("transaction not indexed yet")
	errNoIndexer       = errors.New("no indexer configured")
)
