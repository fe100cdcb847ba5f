package main

import "time"

type Config struct {
	BadgerFilepath string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string        `env:"BLUGE_FILEPATH,required=true"`
	JWTSecret      string        `env:"JWT_SECRET,required=true"`
	TokenDuration  time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	DefaultLimit   int           `env:"DEFAULT_LIMIT,default=50"`
	CensoredWords  []string      `env:"CENSORED_WORDS"`
	CensoredChar   string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	Host           string        `env:"HOST,default=localhost"`
	Port           int           `env:"PORT,default=8080"`
}
