// Package pkg provides the core libraries for crysldoc dependency resolution.
//
// # Overview
//
// crysldoc turns the dependency relation between crypto-API usage rules into
// a deterministic documentation order: every provider is explained before its
// consumers, and the focus rule comes last. The pkg directory is organized
// into four main areas:
//
//  1. [rule] - Universe model (rules, requirements, serialization)
//  2. [resolve] - Resolution engine (sanitizing, cycle collapsing, ordering)
//  3. [pipeline] - Orchestration (caching, batch resolution)
//  4. [cache], [store], [config] - Infrastructure backends
//
// # Architecture
//
// The typical data flow through crysldoc:
//
//	Universe JSON / store
//	         ↓
//	    [rule] package (validate, derive relations)
//	         ↓
//	    [resolve] package (sanitize → collapse cycles → order → verify)
//	         ↓
//	    [pipeline] package (cache, batch, events)
//	         ↓
//	    CLI output / HTTP API / DOT export
//
// # Quick Start
//
//	u, err := rule.ImportJSON("universe.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Resolve(ctx, u, pipeline.Options{Focus: "Cipher"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Order)
//
// See the individual package documentation for details.
package pkg
