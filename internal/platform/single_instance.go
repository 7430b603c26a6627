package platform

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	activateCommand = "show"
	activateTimeout = time.Second
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock. While serving, it turns
// activation requests from later launches into a callback.
type InstanceGuard struct {
	mu       sync.Mutex
	listener net.Listener
	address  string
	serving  sync.WaitGroup
}

// AcquireSingleInstance binds a localhost port derived from appName. A
// second process with the same name fails with ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, errors.WithMessage(ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve calls onActivate for every activation request until Release.
func (guard *InstanceGuard) Serve(onActivate func()) {
	guard.mu.Lock()
	listener := guard.listener
	guard.mu.Unlock()
	if listener == nil {
		return
	}

	guard.serving.Add(1)
	go func() {
		defer guard.serving.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			if readActivation(conn) && onActivate != nil {
				onActivate()
			}
		}
	}()
}

// ActivateRunning asks the instance holding appName's lock to show itself.
func ActivateRunning(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), activateTimeout)
	if err != nil {
		return errors.Wrap(err, "dial running instance")
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(activateTimeout))
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return errors.Wrap(err, "send activation")
	}
	return nil
}

// Release frees the single instance lock and stops serving.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}

	guard.mu.Lock()
	listener := guard.listener
	guard.listener = nil
	guard.mu.Unlock()
	if listener == nil {
		return nil
	}

	err := listener.Close()
	guard.serving.Wait()
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func readActivation(conn net.Conn) bool {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == activateCommand
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
