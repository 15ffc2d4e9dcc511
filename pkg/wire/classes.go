package wire

// Class codes of the standard objects.
const (
	ClassIdentity          uint16 = 0x01
	ClassMessageRouter     uint16 = 0x02
	ClassDeviceNet         uint16 = 0x03
	ClassAssembly          uint16 = 0x04
	ClassConnection        uint16 = 0x05
	ClassConnectionManager uint16 = 0x06
	ClassRegister          uint16 = 0x07
	ClassParameter         uint16 = 0x0F
	ClassParameterGroup    uint16 = 0x10
	ClassFile              uint16 = 0x37
	ClassQoS               uint16 = 0x48
	ClassPort              uint16 = 0xF4
	ClassTCPIPInterface    uint16 = 0xF5
	ClassEthernetLink      uint16 = 0xF6
)

// ClassNames maps standard class codes to their object names.
var ClassNames = map[uint16]string{
	ClassIdentity:          "Identity",
	ClassMessageRouter:     "MessageRouter",
	ClassDeviceNet:         "DeviceNet",
	ClassAssembly:          "Assembly",
	ClassConnection:        "Connection",
	ClassConnectionManager: "ConnectionManager",
	ClassRegister:          "Register",
	ClassParameter:         "Parameter",
	ClassParameterGroup:    "ParameterGroup",
	ClassFile:              "File",
	ClassQoS:               "QoS",
	ClassPort:              "Port",
	ClassTCPIPInterface:    "TCPIPInterface",
	ClassEthernetLink:      "EthernetLink",
}
