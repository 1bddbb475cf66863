package steps

type JSON map[string]any
