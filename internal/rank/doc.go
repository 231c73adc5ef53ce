// Package rank simulates an MPI-style distribution layer over goroutines:
// ranks are goroutines sharing a process, synchronized through a single
// rendezvous primitive backing Barrier, AllReduceMin, and AllGather, and
// spawned as a group with golang.org/x/sync/errgroup.
package rank
