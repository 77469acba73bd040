package raid

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"storcli-exporter/pkg/storcli"
)

// staticRunner serves canned storcli stdout keyed by the arguments
// (without the binary and the JSON flag). Unknown commands print the
// storcli banner, which storcli reports as a command error.
type staticRunner map[string]string

func (r staticRunner) LookPath(binary string) (string, error) {
	return "/usr/sbin/" + binary, nil
}

func (r staticRunner) Run(binary string, args []string, timeout time.Duration) (*storcli.Output, error) {
	key := strings.Join(args[:len(args)-1], " ")
	if out, ok := r[key]; ok {
		return &storcli.Output{Stdout: out}, nil
	}
	return &storcli.Output{Stdout: "Invalid input\nStorage Command Line Tool Ver 007.1907\n"}, nil
}

func newCLI(t *testing.T, r staticRunner) *storcli.StorCLI {
	t.Helper()
	cli, err := storcli.NewRegistry().New(storcli.WithRunner(r), storcli.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return cli
}

// success wraps response data in a successful storcli envelope.
func success(data string) string {
	return `{"Controllers":[{"Command Status":{"CLI Version":"007.1907.0000.0000 Sep 13, 2021","Status":"Success","Description":"None"},` +
		`"Response Data":` + data + `}]}`
}

const (
	showOneController = `{"Number of Controllers":1,"Host Name":"node1","Operating System":"Linux 5.15",` +
		`"System Overview":[{"Ctl":0,"Model":"PERC H730P Mini","Ports":8,"PDs":4,"DGs":2,"DNOpt":1,"VDs":2,"VNOpt":1,"BBU":"Opt","sPR":"On","DS":"-","EHS":"Y","ASOs":3,"Hlth":"NdAtn"}]}`

	controllerShowAll = `{"Basics":{"Controller":0,"Model":"PERC H730P Mini","Serial Number":"  5A0123 "},` +
		`"Version":{"Firmware Version":"25.5.9.0001"},` +
		`"Status":{"Controller Status":"Needs Attention","Memory Correctable Errors":0,"Memory Uncorrectable Errors":2},` +
		`"HwCfg":{"Temperature Sensor for ROC":"Present","Temperature Sensor for Controller":"Absent","ROC temperature(Degree Celsius)":56},` +
		`"Drive Groups":2,"Virtual Drives":2,"Physical Drives":4}`

	virtualDrives = `{"Virtual Drives":[` +
		`{"DG/VD":"0/0","TYPE":"RAID1","State":"Optl","Access":"RW","Consist":"Yes","Cache":"RWBD","Cac":"-","sCC":"ON","Size":"278.875 GB","Name":"os"},` +
		`{"DG/VD":"1/1","TYPE":"RAID5","State":"Dgrd","Access":"RW","Consist":"No","Cache":"RWBD","Cac":"-","sCC":"ON","Size":"1.089 TB","Name":""}]}`

	drives = `{"Drive Information":[` +
		`{"EID:Slt":"32:0","DID":0,"State":"Onln","DG":0,"Size":"278.875 GB","Intf":"SAS","Med":"HDD","SED":"N","PI":"N","SeSz":"512B","Model":"ST300MM0008     ","Sp":"U","Type":"-"},` +
		`{"EID:Slt":"32:1","DID":1,"State":"Rbld","DG":1,"Size":"558.375 GB","Intf":"SAS","Med":"HDD","SED":"N","PI":"N","SeSz":"512B","Model":"ST600MM0006","Sp":"U","Type":"-"},` +
		`{"EID:Slt":"32:2","DID":2,"State":"UBad","DG":"-","Size":"558.375 GB","Intf":"SAS","Med":"HDD","SED":"N","PI":"N","SeSz":"512B","Model":"ST600MM0006","Sp":"U","Type":"-"}]}`

	enclosures = `{"Properties":[{"EID":32,"State":"OK","Slots":8,"PD":3,"PS":0,"Fans":0,"TSs":0,"Alms":0,"SIM":1,"Port#":"-","ProdID":"BP13G+","VendorSpecific":" "}]}`

	cacheVault = `{"Cachevault_Info":[` +
		`{"Property":"Model","Value":"CVPM02"},{"Property":"State","Value":"Optimal"},` +
		`{"Property":"Temperature","Value":"29C (84.20 F)"}],` +
		`"Firmware_Status":[{"Property":"Replacement required","Value":"No"},{"Property":"No space to cache offload","Value":"No"}]}`
)

func fixture() staticRunner {
	return staticRunner{
		"show":               success(showOneController),
		"/c0 show":           success(`{"Product Name":"PERC H730P Mini"}`),
		"/c0 show all":       success(controllerShowAll),
		"/c0/vall show":      success(virtualDrives),
		"/c0/eall/sall show": success(drives),
		"/c0/eall show":      success(enclosures),
		"/c0/cv show":        success(`{"Cachevault_Info":[]}`),
		"/c0/cv show all":    success(cacheVault),
	}
}
