package config

const SERVER_YML = `
mayday:
  cron:
    timeZone: "America/Toronto"
  listener:
    port: 5000

sqlite:
  passPhrase: passphrase

google:
  storage:
    bucket: "mayday"
    prefix: "mayday-dev"
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackupAndSync: false
  applicationCredentials:

twilio:
  accountSid:
  authToken:
  phoneNumber:
`
