package app

// MediaPlayer plays a media URL outside the terminal.
// Stop halts whatever Play started; it is a no-op when nothing is playing.
type MediaPlayer interface {
	Play(url string) error
	Stop() error
}
