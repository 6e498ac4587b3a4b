// Package drive talks to the cloud drive that backs the file index.
//
// Scanning walks the remote directory listing page by page. Entries are
// served at most four at a time; once indexed, an entry's resource id
// is deleted server-side so the next fetch surfaces the following
// entries. A page that comes back empty means the listing is drained.
package drive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/saloxy/sal-server/pkg/fetch"
	"github.com/saloxy/sal-server/pkg/statefile"
)

const (
	// DefaultScanHost serves the directory listing API.
	DefaultScanHost = "http://pan-yz.chaoxing.com"

	// DefaultLinkHost serves share pages carrying direct download links.
	DefaultLinkHost = "http://sharewh.xuexi365.com"

	// DefaultPageSize is the largest page the listing API returns.
	DefaultPageSize = 4
)

var (
	// ErrDenied is returned when the drive rejects the credentials.
	ErrDenied = errors.New("drive: access denied")

	// ErrBadPayload is returned for replies that don't match the drive's
	// wire format.
	ErrBadPayload = errors.New("drive: malformed reply")

	// ErrLinkNotFound is returned when no download link exists for an
	// object id.
	ErrLinkNotFound = errors.New("drive: download link not found")
)

var downloadURLRgx = regexp.MustCompile(`var\s+downloadUrl\s*=\s*'([^']+)'`)

// linkFailureMarker appears in the share page body when the object id
// resolves to nothing.
const linkFailureMarker = "获取下载地址失败"

// Credentials identify a drive account and the directory to scan. An
// empty DirID means the account root.
type Credentials struct {
	UID   string
	Token string
	DirID string
}

// Entry is one file surfaced by a scan. Resid is the listing resource
// id used for the post-scan delete; it is not part of the index.
type Entry struct {
	Name     string
	ObjectID string
	Resid    string
}

// Client is a drive API client.
type Client struct {
	// ScanHost and LinkHost override the drive endpoints; empty means
	// the defaults.
	ScanHost string
	LinkHost string

	// PageSize caps listing pages; empty means DefaultPageSize.
	PageSize int

	creds Credentials
}

// NewClient creates a client for the given credentials.
func NewClient(creds Credentials) *Client {
	return &Client{creds: creds}
}

// Credentials returns the credentials the client was built with.
func (c *Client) Credentials() Credentials {
	return c.creds
}

func (c *Client) scanHost() string {
	if c.ScanHost != "" {
		return c.ScanHost
	}
	return DefaultScanHost
}

func (c *Client) linkHost() string {
	if c.LinkHost != "" {
		return c.LinkHost
	}
	return DefaultLinkHost
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

type listReply struct {
	Result bool   `json:"result"`
	Msg    string `json:"msg"`
	Data   []struct {
		Name     string `json:"name"`
		ObjectID string `json:"objectId"`
		Resid    string `json:"residstr"`
	} `json:"data"`
}

// ScanPage fetches one listing page and deletes the resource ids it
// returns, so a following call surfaces the next entries.
func (c *Client) ScanPage(ctx context.Context) ([]Entry, error) {
	q := url.Values{}
	q.Set("puid", c.creds.UID)
	q.Set("_token", c.creds.Token)
	q.Set("fldid", c.creds.DirID)
	q.Set("page", "1")
	q.Set("size", strconv.Itoa(c.pageSize()))

	resp, err := fetch.Fetch(ctx, c.scanHost()+"/api/getMyDirAndFiles?"+q.Encode(), http.MethodGet)
	if err != nil {
		return nil, err
	}

	var reply listReply
	if err := resp.JSON(&reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !reply.Result {
		return nil, fmt.Errorf("%w: %s", ErrDenied, reply.Msg)
	}

	entries := make([]Entry, 0, len(reply.Data))
	resids := make([]string, 0, len(reply.Data))
	for _, d := range reply.Data {
		if d.ObjectID == "" || d.Name == "" {
			return nil, fmt.Errorf("%w: listing entry missing fields", ErrBadPayload)
		}
		entries = append(entries, Entry{Name: d.Name, ObjectID: d.ObjectID, Resid: d.Resid})
		if d.Resid != "" {
			resids = append(resids, d.Resid)
		}
	}

	if err := c.deleteResids(ctx, resids); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanAll drains the listing into the index and reports how many files
// were added.
func (c *Client) ScanAll(ctx context.Context, ix *statefile.Index) (int, error) {
	total := 0
	for {
		entries, err := c.ScanPage(ctx)
		if err != nil {
			return total, err
		}
		if len(entries) == 0 {
			return total, nil
		}

		page := &statefile.Index{}
		for _, e := range entries {
			page.Files = append(page.Files, statefile.File{
				Name:     e.Name,
				ObjectID: e.ObjectID,
			})
		}

		// If the server-side delete did not advance the listing, the
		// same entries come back again. A pass that adds nothing to the
		// index means the scan is done.
		added := ix.Merge(page)
		if added == 0 {
			return total, nil
		}
		total += added
	}
}

type deleteReply struct {
	Result  bool   `json:"result"`
	Success *bool  `json:"success"`
	Msg     string `json:"msg"`
}

func (c *Client) deleteResids(ctx context.Context, resids []string) error {
	if len(resids) == 0 {
		return nil
	}

	q := url.Values{}
	q.Set("puid", c.creds.UID)
	q.Set("_token", c.creds.Token)
	q.Set("resids", strings.Join(resids, ","))

	resp, err := fetch.Fetch(ctx, c.scanHost()+"/api/delete?"+q.Encode(), http.MethodGet)
	if err != nil {
		return err
	}

	var reply deleteReply
	if err := resp.JSON(&reply); err != nil {
		return fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if !reply.Result {
		return fmt.Errorf("%w: %s", ErrDenied, reply.Msg)
	}

	return nil
}

// Link resolves a direct download link for an object id by scraping the
// share page. The returned URL requires a sharewh Referer header to
// actually download.
func (c *Client) Link(ctx context.Context, objectID string) (string, error) {
	resp, err := fetch.Fetch(ctx, c.linkHost()+"/share/download/"+url.PathEscape(objectID), http.MethodGet)
	if err != nil {
		return "", err
	}

	body := string(resp.Body)
	if m := downloadURLRgx.FindStringSubmatch(body); m != nil {
		return m[1], nil
	}
	if strings.Contains(body, linkFailureMarker) {
		return "", fmt.Errorf("%w: %s", ErrLinkNotFound, objectID)
	}

	return "", fmt.Errorf("%w: no download link in share page", ErrBadPayload)
}
