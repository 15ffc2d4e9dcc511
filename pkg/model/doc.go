// Package model implements the CIP object model.
//
// # Object Hierarchy
//
//	Registry > Class > Instance > Attribute
//
// A Registry owns every class of a device. Each class owns its instances,
// numbered from 1, and each instance owns a fixed number of attribute slots.
// Attribute slots reference values owned by the business objects; the model
// reads and writes through these references and never copies them.
//
// # Class Scope and Instance Scope
//
// Every class is itself addressable as instance 0. Requests to instance 0
// are served from the class scope, everything else from the instance scope:
//
//	Class 0x01 (Identity)
//	├── instance 0  class scope: revision, instance counts, highest attribute numbers
//	├── instance 1  instance scope: vendor ID, device type, ...
//	└── ...
//
// Each scope has its own attribute capacity, get-all mask and service table.
// Both are routed through the same dispatcher (Notify).
//
// # Standard Class Attributes
//
// CreateClass registers seven attributes in the class scope:
//
//	1  revision
//	2  highest instance number
//	3  number of instances
//	4  optional attribute list (always 0)
//	5  optional service list (always 0)
//	6  highest class attribute number
//	7  highest instance attribute number
//
// # Capacity
//
// Attribute and service tables are sized when the class is created and
// never grow. Exceeding them is a configuration error reported as
// ErrAttributeCapacity or ErrServiceCapacity.
//
// # Concurrency
//
// The model performs no locking. Callers serving several connections must
// serialize access, for example by holding a lock around Notify.
package model
