package storcli

import "strconv"

// Well-known error codes
const (
	CodeSuccess                        = 0
	CodeInvalidCommand                 = 1
	CodeIncompleteForeignConfiguration = 59
	CodeInvalidStatus                  = 255
)

// ErrorCode describes one of the numeric status codes storcli reports in
// the "Detailed Status" block of a failed command.
type ErrorCode struct {
	Code                int
	ShortDescription    string
	DetailedDescription string
}

// Description returns the short description, or the detailed one when the
// code has no short form.
func (e ErrorCode) Description() string {
	if e.ShortDescription == "" {
		return e.DetailedDescription
	}
	return e.ShortDescription
}

// IsInvalid reports whether e is the sentinel returned for unknown input.
func (e ErrorCode) IsInvalid() bool {
	return e.Code == CodeInvalidStatus
}

func (e ErrorCode) String() string {
	return strconv.Itoa(e.Code) + ": " + e.Description()
}

// errorCodeTable is the list published by Broadcom for the 12Gb/s MegaRAID
// tri-mode storcli. Codes 41-44 and 60 are not assigned.
var errorCodeTable = []ErrorCode{
	{0, "", "Command completed successfully."},
	{1, "", "Invalid command."},
	{2, "", "DCMD opcode is invalid."},
	{3, "", "Input parameters are invalid."},
	{4, "", "Invalid sequence number."},
	{5, "", "Abort is not possible for the requested command."},
	{6, "", "Application 'host' code not found."},
	{7, "", "Application already in use - try later."},
	{8, "", "Application not initialized."},
	{9, "", "Given array index is invalid."},
	{10, "", "Unable to add the missing drive to array, as row has no empty slots."},
	{11, "", "Some of the CFG resources conflict with each other or the current config."},
	{12, "", "Invalid device ID / select-timeout."},
	{13, "", "Drive is too small for the requested operation."},
	{14, "", "Flash memory allocation failed."},
	{15, "", "Flash download already in progress."},
	{16, "", "Flash operation failed."},
	{17, "", "Flash image was bad."},
	{18, "", "Downloaded flash image is incomplete."},
	{19, "", "Flash OPEN was not done."},
	{20, "", "Flash sequence is not active."},
	{21, "", "Flush command failed."},
	{22, "", "Specified application does not have host-resident code."},
	{23, "", "LD operation not possible - CC is in progress."},
	{24, "", "LD initialization in progress."},
	{25, "", "LBA is out of range."},
	{26, "", "Maximum LDs are already configured."},
	{27, "", "LD is not OPTIMAL."},
	{28, "", "LD Rebuild is in progress."},
	{29, "", "LD is undergoing reconstruction."},
	{30, "", "LD RAID level is wrong for the requested operation."},
	{31, "", "Too many spares assigned."},
	{32, "", "Scratch memory not available, try the command again later."},
	{33, "", "Error writing MFC data to SEEPROM."},
	{34, "", "Required HW is missing (for example, Alarm or BBU)."},
	{35, "", "Item not found."},
	{36, "", "LD drives are not within an enclosure."},
	{37, "", "PD CLEAR operation is in progress."},
	{38, "", "Unable to use SATA(SAS) drive to replace SAS(SATA)."},
	{39, "", "Patrol Read is disabled."},
	{40, "", "Given row index is invalid."},
	{45, "", "SCSI command done, but non-GOOD status was received-see mf.hdr.extStatus for SCSI_STATUS."},
	{46, "", "IO request for MFI_CMD_OP_PD_SCSI failed - see extStatus for DM error."},
	{47, "", "Matches SCSI RESERVATION_CONFLICT."},
	{48, "", "One or more of the flush operations failed."},
	{49, "", "Firmware real-time currently not set."},
	{50, "", "Command issues while firmware is in the wrong state (for example, GET RECON when op not active)."},
	{51, "", "LD is not OFFLINE - IO not possible."},
	{52, "", "Peer controller rejected request (possibly due to a resource conflict)."},
	{53, "", "Unable to inform peer of communication changes (retry might be appropriate)."},
	{54, "", "LD reservation already in progress."},
	{55, "", "I2C errors were detected."},
	{56, "", "PCI errors occurred during XOR/DMA operation."},
	{57, "", "Diagnostics failed, see the event log for details."},
	{58, "", "Unable to process command as boot messages are pending."},
	{59, "Incomplete foreign configuration", "Returned in case if foreign configurations are incomplete."},
	{61, "", "Returned when a command is tried on unsupported hardware."},
	{62, "", "CC scheduling is disabled."},
	{63, "", "PD CopyBack operation is in progress."},
	{64, "", "Selected more than one PD per array."},
	{65, "", "Microcode update operation failed."},
	{66, "", "Unable to process the command as the drive security feature is not enabled."},
	{67, "", "Controller already has a lock key."},
	{68, "", "Lock key cannot be backed-up."},
	{69, "", "Lock key backup cannot be verified."},
	{70, "", "Lock key from backup failed verification."},
	{71, "", "Rekey operation not allowed, unless controller already has a lock key."},
	{72, "", "Lock key is not valid, cannot authenticate."},
	{73, "", "Lock key from escrow cannot be used."},
	{74, "", "Lock key backup (pass-phrase) is required."},
	{75, "", "Secure LD exists."},
	{76, "", "LD secure operation is not allowed."},
	{77, "", "Reprovisioning is not allowed."},
	{78, "", "Drive security type (FDE or non-FDE) is not appropriate for the requested operation."},
	{79, "", "LD encryption type is not supported."},
	{80, "", "Cannot mix FDE and non-FDE drives in same array."},
	{81, "", "Cannot mix secure and unsecured LD in same array."},
	{82, "", "Secret key not allowed."},
	{83, "", "Physical device errors were detected."},
	{84, "", "Controller has LD cache pinned."},
	{85, "", "Requested operation is already in progress."},
	{86, "", "Another power state set operation is in progress."},
	{87, "", "Power state of device is not correct."},
	{88, "", "No PD is available for patrol read."},
	{89, "", "Controller reset is required."},
	{90, "", "No EKM boot agent detected."},
	{91, "", "No space on the snapshot repository VD."},
	{92, "", "For consistency SET PiTs, some PiT creations might fail and some succeed."},
	{93, "", "Secondary iButton cannot be used and is incompatible with controller."},
	{94, "", "PFK does not match or cannot be applied to the controller."},
	{95, "", "Maximum allowed unconfigured (configurable) PDs exist."},
	{96, "", "IO metrics are not being collected."},
	{97, "", "AEC capture must be stopped before proceeding."},
	{98, "", "Unsupported level of protection information."},
	{99, "", "PDs in LD have incompatible EEDP types."},
	{100, "", "Request cannot be completed because protection information is not enabled."},
	{101, "", "PDs in LD have different block sizes."},
	{102, "", "LD Cached data is present on a (this) SSCD."},
	{103, "", "Config sequence number mismatch."},
	{104, "", "Flash image is not supported."},
	{105, "", "Controller cannot be online-reset."},
	{106, "", "Controller booted to safe mode, command is not supported in this mode."},
	{107, "", "SSC memory is unavailable to complete the operation."},
	{108, "", "Peer node is incompatible."},
	{109, "", "Dedicated hot spare assignment is limited to array(s) with same LDs."},
	{110, "", "Signed component is not part of the image."},
	{111, "", "Authentication failure of the signed firmware image."},
	{112, "", "Flashing was ok but FW restart is not required, ex: No change in FW from current."},
	{113, "", "Firmware is in some form of restricted mode, example: passive in A/P HA mode."},
	{114, "", "The maximum number of entries are exceeded."},
	{115, "", "Cannot start the subsequent flush because the previous flush is still active."},
	{116, "", "Status is ok but a reboot is need for the change to take effect."},
	{117, "", "Cannot perform the operation because the background operation is still in progress."},
	{118, "", "Operation is not possible."},
	{119, "", "Firmware update on the peer node is in progress."},
	{120, "", "Hidden policy is not set for all of the virtual drives in the drive group that contains this virtual drive."},
	{121, "", "Indicates that there are one or more secure system drives in the system."},
	{122, "", "Boot LD cannot be hidden."},
	{123, "", "The LD count is greater than the maximum transportable LD count."},
	{124, "", "DHSP is associated with more than one disk group. Force is needed if dcmd.mbox.b[5] is 0."},
	{125, "", "The operation not possible because the configuration has some LDs in a transport ready state."},
	{126, "", "The IO request encountered a SCSI DATA UNDERRUN, MFI_HDR.length. The length is set to bytes transferred."},
	{127, "", "Firmware flash is not allowed in the current mode."},
	{128, "", "The operation is not possible because the device is in a transport ready state."},
	{129, "", "The operation is not possible because the LD is in a transport ready state."},
	{130, "", "The operation is not possible because the LD is not in a transport ready state."},
	{131, "", "The operation is not possible because the PD in a removal ready state."},
	{132, "", "The status is ok, but a host reboot is required for the changes to take effect."},
	{133, "", "A microcode update is pending on the device."},
	{134, "", "A microcode update is in progress on the device."},
	{135, "", "There is a mismatch between the drive type and the erase option."},
	{136, "", "The operation is not possible because an automatically created configuration exists."},
	{137, "", "A secure EPD or EPD-PASSTHRU device exists."},
	{138, "", "The operation is not possible because the host FRU data is invalid."},
	{139, "", "The operation is not possible because the controller FRU data is invalid."},
	{140, "", "The requested image not found."},
	{141, "", "NVCache related error."},
	{142, "", "The requested LD size is less than MINIMUM SIZE LIMIT."},
	{143, "", "The requested drive count is invalid for this raid level."},
	{144, "", "An OEM-specific backplane authentication failure."},
	{145, "", "The OEM-specific backplane not found."},
	{146, "", "Flashing the image is not possible because the downloaded and running firmware on the controller are same."},
	{147, "", "Unmap is not supported on the device or the controller."},
	{148, "", "The device does not support the sanitize type that is specified."},
	{149, "", "A valid Snapdump is unavailable."},
	{150, "", "The Snapdump feature is not enabled."},
	{151, "", "The LD or device does not support the requested policy."},
	{152, "", "The requested operation cannot be performed because of an existing configuration."},
	{153, "", "The status is ok, but a shutdown is required to take effect."},
	{154, "", "The PD cannot participate in a RAID configuration."},
	{155, "", "Secure boot needs another key slot and the eFUSE is full."},
	{156, "", "Clear Snapdump before proceeding."},
	{157, "", "The operation is not possible because one or more non unmap drives are used."},
	{158, "", "The firmware image will disable the firmware device re-ordering."},
	{159, "", "New firmware download is not allowed due to a Secure Boot pending key change."},
	{160, "", "DPM only supports in EXT format."},
	{161, "", "The NVMe repair command failed."},
	{162, "", "The NVMe repair command is already in progress for this device."},
	{163, "", "The NVMe repair status displays there is no repair in progress for this device."},
	{164, "", "The imported certificate chain failed the firmware validation."},
	{165, "", "The contents of the specified slot cannot be altered."},
	{166, "", "The import initiated without an export or another import in process."},
	{167, "", "Another export operation is in process."},
	{168, "", "The configuration page read command failed."},
	{169, "", "Failed to authenticate due to an invalid key pair or certificate."},
	{170, "", "The certificate page read succeeded, but this page is not yet present in MPB."},
	{171, "", "Lock key passphrase is incorrect, the user may retry."},
	{172, "", "Lock key passphrase try count is exceeded, a reboot is required."},
	{173, "", "The requested operation is not possible because of an active reconstruction."},
	{174, "", "The requested operation is not possible as the firmware activation is pending."},
	{175, "", "The requested operation is not possible as the PD Sanitize operation is in progress."},
	{255, "", "Invalid status - used for polling command completion."},
}

var (
	invalidStatus  = errorCodeTable[len(errorCodeTable)-1]
	codesByNumber  map[int]ErrorCode
	codesByMessage map[string]ErrorCode
)

func init() {
	codesByNumber = make(map[int]ErrorCode, len(errorCodeTable))
	codesByMessage = make(map[string]ErrorCode, 2*len(errorCodeTable))
	for _, e := range errorCodeTable {
		codesByNumber[e.Code] = e
		if e.ShortDescription != "" {
			codesByMessage[e.ShortDescription] = e
		}
		if _, taken := codesByMessage[e.DetailedDescription]; !taken {
			codesByMessage[e.DetailedDescription] = e
		}
	}
}

// DescribeErrorCode returns the table entry for code. Unknown codes map to
// the invalid-status sentinel.
func DescribeErrorCode(code int) ErrorCode {
	if e, ok := codesByNumber[code]; ok {
		return e
	}
	return invalidStatus
}

// LookupErrorCode finds the entry whose short or detailed description is
// exactly text. Matching is case-sensitive. Unknown text maps to the
// invalid-status sentinel.
func LookupErrorCode(text string) ErrorCode {
	if text == "" {
		return invalidStatus
	}
	if e, ok := codesByMessage[text]; ok {
		return e
	}
	return invalidStatus
}

// ErrorCodes returns a copy of the whole table ordered by code.
func ErrorCodes() []ErrorCode {
	out := make([]ErrorCode, len(errorCodeTable))
	copy(out, errorCodeTable)
	return out
}
