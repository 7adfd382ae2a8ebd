// Package artifacts finds and prunes the video files a render leaves in the
// output tree.
//
// Resolution maps each requested scene to the most recently modified file
// whose name contains the scene name, searching the tree recursively with a
// `**/*<scene>*<ext>` pattern. Cleanup removes every video under the tree
// before a render so stale files cannot be mistaken for fresh output; it is
// best-effort and never fails the caller.
package artifacts
