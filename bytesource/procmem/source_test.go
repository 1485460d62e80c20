package procmem

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type SourceSuite struct{}

func TestSource(t *testing.T) {
	suite.RunTests(t, &SourceSuite{})
}

// firstMappedRegion returns the start address of pid's first mapped memory
// region, read from /proc/<pid>/maps.
func firstMappedRegion(pid int) (uintptr, error) {
	file, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return 0, fmt.Errorf("no mapped regions for process %d", pid)
	}

	fields := strings.SplitN(scanner.Text(), "-", 2)
	addr, err := strconv.ParseUint(fields[0], 16, 64)
	if err != nil {
		return 0, err
	}

	return uintptr(addr), nil
}

func startTracee(t *testing.T) (*exec.Cmd, func()) {
	cmd := exec.Command("sleep", "30")
	err := cmd.Start()
	expect.Nil(t, err)

	return cmd, func() { cmd.Process.Kill(); cmd.Wait() }
}

func (SourceSuite) TestAttachAndReadRegion(t *testing.T) {
	cmd, cleanup := startTracee(t)
	defer cleanup()

	src, err := Attach(cmd.Process.Pid)
	expect.Nil(t, err)
	defer src.Close()

	addr, err := firstMappedRegion(cmd.Process.Pid)
	expect.Nil(t, err)

	region := src.Region(addr, 64)

	err = region.WithCursor(func(c *cursor.Cursor) error {
		expect.Equal(t, 64, c.Remaining())

		_, err := c.SliceSpanByBytes(64)
		return err
	})
	expect.Nil(t, err)
}

func (SourceSuite) TestAttachInvalidPid(t *testing.T) {
	_, err := Attach(0)
	expect.NotNil(t, err)
}

func (SourceSuite) TestRegionUnmappedAddressFails(t *testing.T) {
	cmd, cleanup := startTracee(t)
	defer cleanup()

	src, err := Attach(cmd.Process.Pid)
	expect.Nil(t, err)
	defer src.Close()

	// Address 0 is never mapped, so the read fails.
	region := src.Region(0, 64)
	err = region.WithCursor(func(c *cursor.Cursor) error {
		return nil
	})
	expect.NotNil(t, err)
}
