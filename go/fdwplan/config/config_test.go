// Copyright 2026 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multigres/pgfdwplan/go/fdwplan/config"
	"github.com/multigres/pgfdwplan/go/parser/ast"
)

func TestLoadDefaultsWhenServerUnset(t *testing.T) {
	v := viper.New()

	cfg, err := config.Load(v, "myserver")
	require.NoError(t, err)

	assert.Equal(t, ast.FirstBootstrapObjectId, cfg.BuiltinCutoff)
	assert.Equal(t, int64(8192), cfg.BlockSizeBytes)
}

func TestLoadReadsPerServerOverrides(t *testing.T) {
	v := viper.New()
	v.Set("servers.myserver.builtin_cutoff", 5000)
	v.Set("servers.myserver.block_size_bytes", 4096)

	cfg, err := config.Load(v, "myserver")
	require.NoError(t, err)

	assert.Equal(t, ast.Oid(5000), cfg.BuiltinCutoff)
	assert.Equal(t, int64(4096), cfg.BlockSizeBytes)
}

func TestLoadIgnoresOtherServersOverrides(t *testing.T) {
	v := viper.New()
	v.Set("servers.otherserver.builtin_cutoff", 12000)

	cfg, err := config.Load(v, "myserver")
	require.NoError(t, err)

	assert.Equal(t, ast.FirstBootstrapObjectId, cfg.BuiltinCutoff)
}

func TestLoadRejectsNonPositiveCutoff(t *testing.T) {
	v := viper.New()
	v.Set("servers.myserver.builtin_cutoff", 0)

	_, err := config.Load(v, "myserver")
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveBlockSize(t *testing.T) {
	v := viper.New()
	v.Set("servers.myserver.block_size_bytes", -1)

	_, err := config.Load(v, "myserver")
	assert.Error(t, err)
}
