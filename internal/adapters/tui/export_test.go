package tui

// FinalModel returns the model the program exited with. Only valid after Wait.
func (i *Indicator) FinalModel() Model {
	m, _ := i.final.(Model)
	return m
}
