// Package cutover moves live traffic from the legacy standard switches
// to the distributed switch, in the only order that never severs
// connectivity: VM adapters first, then each host's management kernel
// nic, then the remaining physical adapters, and finally the now-empty
// legacy port groups. Each per-host step checks that the previous phase
// completed for that host before touching it.
package cutover
