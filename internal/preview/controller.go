package preview

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/hanja-api/wallpaper-preview/internal/model"
	"github.com/hanja-api/wallpaper-preview/internal/wallpaper"
)

// Controller drives the preview area from the form controls
type Controller struct {
	view       View
	form       Form
	fetcher    Fetcher
	downloader Downloader

	mu     sync.Mutex
	lastID *int
	seq    uint64

	// run starts a background fetch; tests replace it to run inline
	run func(func())
}

// NewController creates a controller. Nothing is fetched until Load.
func NewController(view View, form Form, fetcher Fetcher, downloader Downloader) *Controller {
	return &Controller{
		view:       view,
		form:       form,
		fetcher:    fetcher,
		downloader: downloader,
		run:        func(f func()) { go f() },
	}
}

// LastID returns the last-seen character id
func (c *Controller) LastID() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastID == nil {
		return 0, false
	}
	return *c.lastID, true
}

func (c *Controller) clearLastID() {
	c.mu.Lock()
	c.lastID = nil
	c.mu.Unlock()
}

func (c *Controller) lastIDCopy() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastID == nil {
		return nil
	}
	id := *c.lastID
	return &id
}

// Load runs the initial preview fetch
func (c *Controller) Load() {
	c.Preview()
}

// Refresh forgets the last-seen id and fetches a new preview
func (c *Controller) Refresh() {
	c.clearLastID()
	c.Preview()
}

// OnCharacterListChanged forgets the last-seen id and fetches a new preview
func (c *Controller) OnCharacterListChanged() {
	c.clearLastID()
	c.Preview()
}

// OnDeviceModelChanged keeps the last-seen id; only the render target changes
func (c *Controller) OnDeviceModelChanged() {
	c.Preview()
}

// OnCharacterIDChanged forgets the last-seen id and fetches a new preview
func (c *Controller) OnCharacterIDChanged() {
	c.clearLastID()
	c.Preview()
}

// Preview shows the loading indicator and starts a fetch. The server picks
// the character unless the id field is filled.
func (c *Controller) Preview() {
	q := c.form.Query()
	ref := wallpaper.BuildURL(model.OutputSVG, q, nil, false)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	c.view.ShowLoading()
	c.run(func() { c.fetch(seq, ref) })
}

// fetch performs one preview request; only the newest request may touch the view
func (c *Controller) fetch(seq uint64, ref string) {
	reqID := uuid.NewString()[:8]
	log.Printf("[preview %s] fetching %s", reqID, ref)

	p, vb, err := c.load(ref)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		log.Printf("[preview %s] dropping stale response", reqID)
		return
	}
	if err == nil {
		if id, ok := wallpaper.ParseCharacterID(p.ContentDisposition); ok {
			c.lastID = &id
			log.Printf("[preview %s] rendered character %d", reqID, id)
		}
	}
	c.mu.Unlock()

	// The view may paint later on the UI goroutine; by then a newer fetch
	// can own the preview area.
	current := func() bool { return c.isCurrent(seq) }

	if err != nil {
		log.Printf("[preview %s] error loading preview: %v", reqID, err)
		c.view.ShowError(current)
		return
	}
	c.view.ShowPreview(p.Body, vb, current)
}

func (c *Controller) isCurrent(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq == c.seq
}

func (c *Controller) load(ref string) (p *wallpaper.Preview, vb wallpaper.ViewBox, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing preview: %v", r)
		}
	}()

	p, err = c.fetcher.FetchPreview(context.Background(), ref)
	if err != nil {
		return nil, vb, err
	}

	vb, err = wallpaper.Inspect(p.Body)
	if err != nil {
		return nil, vb, err
	}
	return p, vb, nil
}

// Download hands the PNG for the current form, or for the previewed
// character when the id field is blank, to the downloader.
func (c *Controller) Download() {
	q := c.form.Query()
	lastID := c.lastIDCopy()
	ref := wallpaper.BuildURL(model.OutputPNG, q, lastID, true)

	id := q.TrimmedID()
	if id == "" && lastID != nil {
		id = strconv.Itoa(*lastID)
	}
	filename := wallpaper.SuggestedFilename(q.CharacterList, id)

	task, err := c.downloader.Enqueue(ref, filename)
	if err != nil {
		log.Printf("Download not started for %s: %v", filename, err)
		return
	}
	log.Printf("Download queued: id=%s file=%s", task.ID, filename)
}
