// Package sync2 holds the 64-bit synchronization vocabulary introduced by VK_KHR_synchronization2
// and promoted to core in Vulkan 1.3: stage and access masks, barriers, dependencies and
// submission batches. It carries data only. Recording and submission go through
// synchronization.Synchronization2Commands.
package sync2
