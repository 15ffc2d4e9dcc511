// Package persistence keeps settable attribute values across restarts.
//
// Values are stored as hex encoded wire bytes keyed by class, instance and
// attribute in a JSON state file. A Recorder installed as the registry's
// set observer rewrites the file after every accepted write.
package persistence
