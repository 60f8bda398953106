// Package kernel holds the small value types shared by every freight model:
// UUIDs for transfers, catalogue product and category ids, and millimetre
// dimensions with their derived volume.
package kernel
