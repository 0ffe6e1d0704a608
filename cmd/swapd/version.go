package main

// Version is swapd's reported build version. Bumped by hand until a release
// pipeline stamps it via ldflags, following the pattern lnd's build package
// uses before its git-describe wiring takes over.
const Version = "0.1.0"
