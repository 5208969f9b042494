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

// Package config loads planner-core settings that vary per remote server:
// the built-in-object OID cutoff (addressing the "built-in cutoff should be
// configurable per server" open question) and the local block size used by
// the ANALYZE size estimate.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/multigres/pgfdwplan/go/parser/ast"
)

// ServerConfig holds the planner-core settings for one remote server.
type ServerConfig struct {
	// BuiltinCutoff overrides ast.FirstBootstrapObjectId for this server.
	// Older remote servers may not carry every object below the local
	// cutoff, so a server entry can pin a lower value.
	BuiltinCutoff ast.Oid

	// BlockSizeBytes is the local storage block size fed into the ANALYZE
	// size-estimate query; it is a known approximation, not queried from
	// the remote server.
	BlockSizeBytes int64
}

const (
	defaultBlockSizeBytes = 8192
	keyBuiltinCutoff       = "builtin_cutoff"
	keyBlockSizeBytes      = "block_size_bytes"
)

// Load reads planner-core configuration for serverName from v, falling
// back to ast.FirstBootstrapObjectId and the default 8KiB block size when
// the keys are absent. v is expected to have been set up by the caller
// (file, env, flags) via viper's usual precedence rules.
func Load(v *viper.Viper, serverName string) (ServerConfig, error) {
	cutoff := int64(ast.FirstBootstrapObjectId)
	blockSize := int64(defaultBlockSizeBytes)

	serverKey := fmt.Sprintf("servers.%s", serverName)
	sub := v.Sub(serverKey)
	if sub != nil {
		if sub.IsSet(keyBuiltinCutoff) {
			cutoff = sub.GetInt64(keyBuiltinCutoff)
		}
		if sub.IsSet(keyBlockSizeBytes) {
			blockSize = sub.GetInt64(keyBlockSizeBytes)
		}
	}

	if cutoff <= 0 {
		return ServerConfig{}, fmt.Errorf("config: servers.%s.%s must be positive, got %d", serverName, keyBuiltinCutoff, cutoff)
	}
	if blockSize <= 0 {
		return ServerConfig{}, fmt.Errorf("config: servers.%s.%s must be positive, got %d", serverName, keyBlockSizeBytes, blockSize)
	}

	return ServerConfig{
		BuiltinCutoff:  ast.Oid(cutoff),
		BlockSizeBytes: blockSize,
	}, nil
}
