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

// Package classify partitions a relation's restriction list into the three
// disjoint buckets the planner needs: clauses safe for ordinary remote
// execution, clauses safe remotely but referencing external parameters
// (which cannot appear in a remote EXPLAIN without bound values), and
// clauses that must be evaluated locally.
package classify

import (
	"sort"

	"github.com/multigres/pgfdwplan/go/fdwplan/catalog"
	"github.com/multigres/pgfdwplan/go/fdwplan/plancontext"
	"github.com/multigres/pgfdwplan/go/fdwplan/walker"
)

// Result is the classifier's output: three disjoint restriction lists and
// the deduplicated union of external-parameter IDs referenced by
// ParamConds.
type Result struct {
	RemoteConds []plancontext.Restriction
	ParamConds  []plancontext.Restriction
	LocalConds  []plancontext.Restriction
	ParamIDs    []int
}

// Conditions runs the safety walker over every restriction in restrictions
// and buckets it accordingly. A restriction the walker rejects goes to
// LocalConds. One it admits with no recorded parameter IDs goes to
// RemoteConds. One it admits with recorded parameter IDs goes to
// ParamConds, and its IDs are unioned into the returned ParamIDs set.
//
// A catalog lookup failure from the walker is fatal and aborts
// classification for the whole list, per the error handling design: a
// broken catalog affects every clause, not just the one being examined
// when it surfaced.
func Conditions(restrictions []plancontext.Restriction, rel *plancontext.ForeignRelation, oracle catalog.Oracle) (Result, error) {
	var res Result
	seen := make(map[int]bool)

	for _, r := range restrictions {
		ok, paramIDs, err := walker.ForeignExpr(r.Expr, rel, oracle)
		if err != nil {
			return Result{}, err
		}
		switch {
		case !ok:
			res.LocalConds = append(res.LocalConds, r)
		case len(paramIDs) == 0:
			res.RemoteConds = append(res.RemoteConds, r)
		default:
			res.ParamConds = append(res.ParamConds, r)
			for _, id := range paramIDs {
				if !seen[id] {
					seen[id] = true
					res.ParamIDs = append(res.ParamIDs, id)
				}
			}
		}
	}

	sort.Ints(res.ParamIDs)
	return res, nil
}
