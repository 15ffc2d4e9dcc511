// Package profile loads declarative device profiles.
//
// A profile is a YAML document that lists the classes a device exposes,
// their instances and the initial attribute values:
//
//	name: demo-adapter
//	stack:
//	  reply_buffer_size: 504
//	classes:
//	  - id: 0x01
//	    revision: 1
//	    instances:
//	      - number: 1
//	        attributes:
//	          - {number: 1, name: vendor_id, type: UINT, value: 0x1234, access: [get_single, get_all]}
//	          - {number: 7, name: product_name, type: SHORT_STRING, value: "Demo", access: [get_single, get_all]}
//	  - id: 0x64
//	    name: Setpoints
//	    instances:
//	      - number: 1
//	        attributes:
//	          - {number: 1, type: DINT, value: -5, access: [get_single, set]}
//
// Access defaults to get_single. Declaring any settable attribute adds
// Set_Attribute_Single to the scope. Errors carry the YAML line of the
// offending class, instance or attribute.
package profile
