package emulator

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LoadSnapshot replaces the RAM contents with a snapshot file. Bytes past
// the end of the file are cleared.
func (emu *Emulator) LoadSnapshot(filename string) (err error) {
	if emu.Ram == nil {
		err = ErrRamMissing
		return
	}

	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Ram.Unmarshal(inf)
	if err != nil {
		return
	}

	logrus.WithField("file", filename).Debug("emulator: snapshot loaded")

	return
}

// SaveSnapshot writes the RAM contents to a snapshot file.
func (emu *Emulator) SaveSnapshot(filename string) (err error) {
	if emu.Ram == nil {
		err = ErrRamMissing
		return
	}

	ouf, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = emu.Ram.Marshal(ouf)
	if err != nil {
		return
	}

	logrus.WithField("file", filename).Debug("emulator: snapshot saved")

	return
}
