// Package bru is a research regex engine built around an explicit,
// inspectable pipeline rather than a single opaque matcher: a recursive-
// descent parser produces an sre tree, one of two constructions
// (Thompson or Glushkov) lowers it to a state-machine IR (smir), optional
// transforms rewrite the IR (memoisation, flattening, path-encoding,
// sub-machine extraction), a compiler lowers the IR to a flat bytecode
// program, and a pluggable-scheduler bytecode VM (vm, backed by
// threadmgr's Spencer/Lockstep/Memoised disciplines) executes it.
//
// Compile and MustCompile give a stdlib-regexp-shaped surface for the
// common case. CompileWithOptions and Engine expose every pipeline
// stage's own knobs for callers who want to pick a construction,
// memoisation policy, or scheduler explicitly.
//
//	re, err := bru.Compile(`(\w+)@(\w+)\.(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := re.FindStringSubmatch("user@example.com")
//	fmt.Println(m[1], m[2], m[3]) // user example com
package bru
