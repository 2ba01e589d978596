package ipc

import (
	"bytes"
	"codeberg.org/miketth/tagcycle/pkg/cycler"
	"codeberg.org/miketth/tagcycle/pkg/tagcycle"
	"encoding/json"
	"fmt"
	"io"
	"net"
)

// Requester sends one request per connection to the compositor's request
// socket.
type Requester struct {
	dir string
}

func NewRequester(dir string) *Requester {
	return &Requester{dir: dir}
}

func (r *Requester) FocusedOutput() (tagcycle.Output, bool, error) {
	resp, err := r.roundTrip("focusedoutput", "j")
	if err != nil {
		return tagcycle.Output{}, false, err
	}

	var out *output
	if err := json.Unmarshal(resp, &out); err != nil {
		return tagcycle.Output{}, false, fmt.Errorf("unmarshal focused output: %w", err)
	}
	if out == nil {
		return tagcycle.Output{}, false, nil
	}

	return out.ToOutput(), true, nil
}

func (r *Requester) RequestLayout(output string) error {
	resp, err := r.roundTrip(fmt.Sprintf("requestlayout %s", output), "")
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (r *Requester) ApplyLayout(output string, resp cycler.Response) error {
	body, err := json.Marshal(layoutResponse{
		Output: output,
		TreeID: resp.TreeID,
		Root:   resp.Root,
	})
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	reply, err := r.roundTrip(fmt.Sprintf("applylayout %s", body), "j")
	if err != nil {
		return err
	}
	return expectOK(reply)
}

func expectOK(resp []byte) error {
	if str := string(bytes.TrimSpace(resp)); str != "ok" {
		return fmt.Errorf("compositor: %s", str)
	}
	return nil
}

func (r *Requester) roundTrip(request string, flags string) ([]byte, error) {
	conn, err := r.makeRequest(request, flags)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return readResponse(conn)
}

func (r *Requester) makeRequest(request string, flags string) (*net.UnixConn, error) {
	conn, err := connect(r.dir, Request)
	if err != nil {
		return nil, err
	}

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", flags, request)))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("write to request socket: %w", err)
	}

	if err := conn.CloseWrite(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("finish request: %w", err)
	}

	return conn, nil
}

func readResponse(reader io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("read from request socket: %w", err)
	}
	return buf.Bytes(), nil
}
