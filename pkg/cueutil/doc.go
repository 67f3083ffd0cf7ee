// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both plan files and the tool configuration are CUE documents validated
// against an embedded schema. The package consolidates that flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema root definition
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed plan_schema.cue
//	var planSchema string
//
//	plan, err := cueutil.Decode[Plan](
//	    planSchema,
//	    data,
//	    "#Plan",
//	    cueutil.WithFilename("hostprep.cue"),
//	)
//	if err != nil {
//	    return nil, err // error includes the CUE path of the offending field
//	}
package cueutil
