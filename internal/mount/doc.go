// Package mount exposes snapshot devices as ordinary directories.
//
// LinkMounter creates a directory link pointing at the device object.
// FakeMounter only writes a "<mountPath>.mock" marker and creates an empty
// directory, so the rest of the pipeline runs without privileges.
//
// Neither mounter ever touches a path that is already occupied.
package mount
