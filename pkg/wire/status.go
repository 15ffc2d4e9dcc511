package wire

import (
	"errors"
	"fmt"
)

// Status is a CIP general status code.
type Status uint8

// General status codes.
const (
	StatusSuccess                   Status = 0x00
	StatusConnectionFailure         Status = 0x01
	StatusResourceUnavailable       Status = 0x02
	StatusInvalidParameterValue     Status = 0x03
	StatusPathSegmentError          Status = 0x04
	StatusPathDestinationUnknown    Status = 0x05
	StatusPartialTransfer           Status = 0x06
	StatusConnectionLost            Status = 0x07
	StatusServiceNotSupported       Status = 0x08
	StatusInvalidAttributeValue     Status = 0x09
	StatusAttributeListError        Status = 0x0A
	StatusAlreadyInRequestedMode    Status = 0x0B
	StatusObjectStateConflict       Status = 0x0C
	StatusObjectAlreadyExists       Status = 0x0D
	StatusAttributeNotSettable      Status = 0x0E
	StatusPrivilegeViolation        Status = 0x0F
	StatusDeviceStateConflict       Status = 0x10
	StatusReplyDataTooLarge         Status = 0x11
	StatusFragmentationOfPrimitive  Status = 0x12
	StatusNotEnoughData             Status = 0x13
	StatusAttributeNotSupported     Status = 0x14
	StatusTooMuchData               Status = 0x15
	StatusObjectDoesNotExist        Status = 0x16
	StatusNoFragmentationInProgress Status = 0x17
	StatusNoStoredAttributeData     Status = 0x18
	StatusStoreOperationFailure     Status = 0x19
	StatusRequestPacketTooLarge     Status = 0x1A
	StatusResponsePacketTooLarge    Status = 0x1B
	StatusMissingAttributeListEntry Status = 0x1C
	StatusInvalidAttributeValueList Status = 0x1D
	StatusEmbeddedServiceError      Status = 0x1E
	StatusVendorSpecific            Status = 0x1F
	StatusInvalidParameter          Status = 0x20
	StatusWriteOnceAlreadyWritten   Status = 0x21
	StatusInvalidReplyReceived      Status = 0x22
	StatusKeyFailureInPath          Status = 0x25
	StatusPathSizeInvalid           Status = 0x26
	StatusUnexpectedAttributeInList Status = 0x27
	StatusInvalidMemberID           Status = 0x28
	StatusMemberNotSettable         Status = 0x29
)

var statusNames = map[Status]string{
	StatusSuccess:                   "SUCCESS",
	StatusConnectionFailure:         "CONNECTION_FAILURE",
	StatusResourceUnavailable:       "RESOURCE_UNAVAILABLE",
	StatusInvalidParameterValue:     "INVALID_PARAMETER_VALUE",
	StatusPathSegmentError:          "PATH_SEGMENT_ERROR",
	StatusPathDestinationUnknown:    "PATH_DESTINATION_UNKNOWN",
	StatusPartialTransfer:           "PARTIAL_TRANSFER",
	StatusConnectionLost:            "CONNECTION_LOST",
	StatusServiceNotSupported:       "SERVICE_NOT_SUPPORTED",
	StatusInvalidAttributeValue:     "INVALID_ATTRIBUTE_VALUE",
	StatusAttributeListError:        "ATTRIBUTE_LIST_ERROR",
	StatusAlreadyInRequestedMode:    "ALREADY_IN_REQUESTED_MODE",
	StatusObjectStateConflict:       "OBJECT_STATE_CONFLICT",
	StatusObjectAlreadyExists:       "OBJECT_ALREADY_EXISTS",
	StatusAttributeNotSettable:      "ATTRIBUTE_NOT_SETTABLE",
	StatusPrivilegeViolation:        "PRIVILEGE_VIOLATION",
	StatusDeviceStateConflict:       "DEVICE_STATE_CONFLICT",
	StatusReplyDataTooLarge:         "REPLY_DATA_TOO_LARGE",
	StatusFragmentationOfPrimitive:  "FRAGMENTATION_OF_PRIMITIVE",
	StatusNotEnoughData:             "NOT_ENOUGH_DATA",
	StatusAttributeNotSupported:     "ATTRIBUTE_NOT_SUPPORTED",
	StatusTooMuchData:               "TOO_MUCH_DATA",
	StatusObjectDoesNotExist:        "OBJECT_DOES_NOT_EXIST",
	StatusNoFragmentationInProgress: "NO_FRAGMENTATION_IN_PROGRESS",
	StatusNoStoredAttributeData:     "NO_STORED_ATTRIBUTE_DATA",
	StatusStoreOperationFailure:     "STORE_OPERATION_FAILURE",
	StatusRequestPacketTooLarge:     "REQUEST_PACKET_TOO_LARGE",
	StatusResponsePacketTooLarge:    "RESPONSE_PACKET_TOO_LARGE",
	StatusMissingAttributeListEntry: "MISSING_ATTRIBUTE_LIST_ENTRY",
	StatusInvalidAttributeValueList: "INVALID_ATTRIBUTE_VALUE_LIST",
	StatusEmbeddedServiceError:      "EMBEDDED_SERVICE_ERROR",
	StatusVendorSpecific:            "VENDOR_SPECIFIC",
	StatusInvalidParameter:          "INVALID_PARAMETER",
	StatusWriteOnceAlreadyWritten:   "WRITE_ONCE_ALREADY_WRITTEN",
	StatusInvalidReplyReceived:      "INVALID_REPLY_RECEIVED",
	StatusKeyFailureInPath:          "KEY_FAILURE_IN_PATH",
	StatusPathSizeInvalid:           "PATH_SIZE_INVALID",
	StatusUnexpectedAttributeInList: "UNEXPECTED_ATTRIBUTE_IN_LIST",
	StatusInvalidMemberID:           "INVALID_MEMBER_ID",
	StatusMemberNotSettable:         "MEMBER_NOT_SETTABLE",
}

// String returns the status name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(0x%02X)", uint8(s))
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// MaxAdditionalStatus is the most additional status words a response can
// carry; the count is a single byte on the wire.
const MaxAdditionalStatus = 255

// StatusError carries a general status and optional additional status
// words through an error return.
type StatusError struct {
	Status   Status
	Extended []uint16
	Err      error
}

// NewStatusError wraps err with a general status.
func NewStatusError(status Status, err error) *StatusError {
	return &StatusError{Status: status, Err: err}
}

// WithExtended sets the additional status words, keeping at most
// MaxAdditionalStatus of them.
func (e *StatusError) WithExtended(words ...uint16) *StatusError {
	e.Extended = capAdditional(words)
	return e
}

// AdditionalStatus returns the words that fit in a response.
func (e *StatusError) AdditionalStatus() []uint16 {
	return capAdditional(e.Extended)
}

func capAdditional(words []uint16) []uint16 {
	if len(words) > MaxAdditionalStatus {
		return words[:MaxAdditionalStatus]
	}
	return words
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cip status %s: %v", e.Status, e.Err)
	}
	return "cip status " + e.Status.String()
}

// Unwrap returns the underlying error.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the general status carried by err.
// Buffer overflows map to StatusReplyDataTooLarge.
func StatusOf(err error) (Status, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	if errors.Is(err, ErrBufferFull) {
		return StatusReplyDataTooLarge, true
	}
	return 0, false
}
