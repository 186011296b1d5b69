// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import "strings"

// Key derives the environment variable name for the field reached through
// the given path segments under prefix: every part is upper-cased and the
// parts are joined with underscores.
//
//	Key("app", "server", "port") == "APP_SERVER_PORT"
//	Key("app")                   == "APP"
//
// The result is a pure function of its inputs. Two distinct paths may derive
// the same key (for example a field renamed "v2_v1" next to a nested record
// v2 with a field v1); [Loader] reports such collisions as warnings.
func Key(prefix string, path ...string) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, prefix)
	parts = append(parts, path...)

	return strings.ToUpper(strings.Join(parts, "_"))
}
