// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Mekhanov

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContextOr_UsesAttachedLogger(t *testing.T) {
	var attachedOut, fallbackOut bytes.Buffer
	attached := zerolog.New(&attachedOut)
	fallback := &Logger{zerolog.New(&fallbackOut)}

	ctx := attached.WithContext(context.Background())

	FromContextOr(ctx, fallback).Error().Msg("from context")

	assert.Contains(t, attachedOut.String(), "from context")
	assert.Empty(t, fallbackOut.String())
}

func TestFromContextOr_FallsBackOnBareContext(t *testing.T) {
	var fallbackOut bytes.Buffer
	fallback := &Logger{zerolog.New(&fallbackOut)}

	FromContextOr(context.Background(), fallback).Error().Msg("from fallback")

	assert.Contains(t, fallbackOut.String(), "from fallback")
}
