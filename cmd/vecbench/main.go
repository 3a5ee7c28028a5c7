// Command vecbench drives vector workloads over the heap or an arena and
// reports timing, storage usage and allocator metrics.
package main

func main() {
	execute()
}
