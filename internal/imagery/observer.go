package imagery

// Observer is notified of every tile state change. It is called from fetch workers,
// so implementations must be safe for concurrent use and must not block.
type Observer interface {
	TileStateChanged(tile TileAddress, from, to TileStatus)
}

type ObserverFunc func(tile TileAddress, from, to TileStatus)

func (f ObserverFunc) TileStateChanged(tile TileAddress, from, to TileStatus) {
	f(tile, from, to)
}

type nopObserver struct{}

func (nopObserver) TileStateChanged(TileAddress, TileStatus, TileStatus) {}

var NopObserver Observer = nopObserver{}

// Progress is a point-in-time count of tile states, safe to read while a fetch is running.
type Progress struct {
	Pending  int
	Fetching int
	Fetched  int
	Failed   int
	Corrupt  int
	Total    int
}

func (p Progress) Done() bool {
	return p.Pending == 0 && p.Fetching == 0
}

func progressOf(tiles []*Tile) Progress {
	p := Progress{Total: len(tiles)}
	for _, t := range tiles {
		switch t.Status() {
		case TilePending:
			p.Pending++
		case TileFetching:
			p.Fetching++
		case TileFetched:
			p.Fetched++
		case TileFailed:
			p.Failed++
		case TileCorrupt:
			p.Corrupt++
		}
	}
	return p
}
