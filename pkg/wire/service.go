package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// Service is a CIP service code.
type Service uint8

// ReplyFlag is set in the service code of every response.
const ReplyFlag Service = 0x80

// Common services.
const (
	ServiceGetAttributeAll        Service = 0x01
	ServiceSetAttributeAll        Service = 0x02
	ServiceGetAttributeList       Service = 0x03
	ServiceSetAttributeList       Service = 0x04
	ServiceReset                  Service = 0x05
	ServiceStart                  Service = 0x06
	ServiceStop                   Service = 0x07
	ServiceCreate                 Service = 0x08
	ServiceDelete                 Service = 0x09
	ServiceMultipleServicePacket  Service = 0x0A
	ServiceApplyAttributes        Service = 0x0D
	ServiceGetAttributeSingle     Service = 0x0E
	ServiceSetAttributeSingle     Service = 0x10
	ServiceFindNextObjectInstance Service = 0x11
	ServiceRestore                Service = 0x15
	ServiceSave                   Service = 0x16
	ServiceNoOperation            Service = 0x17
	ServiceGetMember              Service = 0x18
	ServiceSetMember              Service = 0x19
	ServiceInsertMember           Service = 0x1A
	ServiceRemoveMember           Service = 0x1B
	ServiceGroupSync              Service = 0x1C
)

var serviceNames = map[Service]string{
	ServiceGetAttributeAll:        "GetAttributeAll",
	ServiceSetAttributeAll:        "SetAttributeAll",
	ServiceGetAttributeList:       "GetAttributeList",
	ServiceSetAttributeList:       "SetAttributeList",
	ServiceReset:                  "Reset",
	ServiceStart:                  "Start",
	ServiceStop:                   "Stop",
	ServiceCreate:                 "Create",
	ServiceDelete:                 "Delete",
	ServiceMultipleServicePacket:  "MultipleServicePacket",
	ServiceApplyAttributes:        "ApplyAttributes",
	ServiceGetAttributeSingle:     "GetAttributeSingle",
	ServiceSetAttributeSingle:     "SetAttributeSingle",
	ServiceFindNextObjectInstance: "FindNextObjectInstance",
	ServiceRestore:                "Restore",
	ServiceSave:                   "Save",
	ServiceNoOperation:            "NoOperation",
	ServiceGetMember:              "GetMember",
	ServiceSetMember:              "SetMember",
	ServiceInsertMember:           "InsertMember",
	ServiceRemoveMember:           "RemoveMember",
	ServiceGroupSync:              "GroupSync",
}

// Reply returns the reply code for the service.
func (s Service) Reply() Service {
	return s | ReplyFlag
}

// IsReply returns true if the reply flag is set.
func (s Service) IsReply() bool {
	return s&ReplyFlag != 0
}

// Request strips the reply flag.
func (s Service) Request() Service {
	return s &^ ReplyFlag
}

// String returns the service name, with a "Reply" suffix for replies.
func (s Service) String() string {
	name, ok := serviceNames[s.Request()]
	if !ok {
		name = fmt.Sprintf("Service(0x%02X)", uint8(s.Request()))
	}
	if s.IsReply() {
		return name + "Reply"
	}
	return name
}

// ParseService parses a service name (case-insensitive) or a numeric code
// such as "0x0E".
func ParseService(s string) (Service, error) {
	s = strings.TrimSpace(s)
	for code, name := range serviceNames {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown service %q", s)
	}
	return Service(n), nil
}
