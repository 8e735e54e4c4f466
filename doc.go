// Package rcpsp roots the chemoseq scheduler module: a Branch-and-Bound
// solver for the resource-constrained project scheduling problem with
// pairwise activity incompatibilities, modeled after chemotherapy-session
// sequencing (one patient's activities share a precedence chain; activities
// across patients compete for nurses, chairs, physicians, and pharmacists,
// and some pairs may never run concurrently regardless of resource headroom).
//
// The search core lives in scheme, distmatrix, psgs, bounds, selection,
// branch, and bnb. model holds the shared Activity/Resource data. instance,
// generator, report, and cmd/chemoseq are external collaborators: they read
// or render the core's data model but never reach into its search state.
package rcpsp
