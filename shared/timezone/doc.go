// Package timezone keeps the application's display timezone.
//
// Timestamps are stored in UTC and converted with ToAppTime or Format when
// rendered. Init is called once at startup with the APP_TIMEZONE value:
//
//	if err := timezone.Init(cfg.App.Timezone); err != nil { ... }
//	now := timezone.Now()
//	shown := timezone.Format(task.CreatedAt, constant.DisplayDateFormat)
//
// Until Init succeeds every helper falls back to UTC. Use IANA names such as
// "UTC", "Asia/Jakarta" or "Europe/London".
package timezone
