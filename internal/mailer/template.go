package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"strings"
	"time"
)

// Subject is the bilingual confirmation subject line.
const Subject = "本日のブース訪問、ありがとうございます / Thanks for visiting our booth today!"

// bodyTemplate is the bilingual HTML confirmation sent to every
// submitter. DisplayName is optional; the greeting is omitted when the
// form carried no name.
var bodyTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="margin-bottom: 30px;">
    <h2 style="color: #333; margin-bottom: 15px;">本日のブース訪問、ありがとうございます。</h2>
{{- if .DisplayName}}
    <p>{{.DisplayName}} 様</p>
{{- end}}
    <p>貴方のご回答、確かに拝見しました。</p>
    <p>担当者より改めてご連絡いたします。</p>
    <p style="margin-top: 20px;">私たちは日本で、決して止まってはいけない社会インフラを支える通信技術に取り組んでいます。</p>
    <p>日本で学び、経験を積み、将来その力をタイで活かしたい方との出会いを楽しみにしています。</p>
    <div style="margin-top: 30px;">
      <p style="margin-bottom: 5px;"><strong>CEO 十河元太郎</strong></p>
      <p style="margin-bottom: 5px;"><strong>協和テクノロジィズ株式会社</strong></p>
      <p style="margin-bottom: 5px;">採用専用メールアドレス: <a href="mailto:r-hirata@star.kyotec.co.jp">r-hirata@star.kyotec.co.jp</a></p>
    </div>
  </div>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;">
  <div>
{{- if .DisplayName}}
    <h2 style="color: #333; margin-bottom: 15px;">Dear {{.DisplayName}},</h2>
{{- else}}
    <h2 style="color: #333; margin-bottom: 15px;">Dear All,</h2>
{{- end}}
    <p><strong>Thanks for visiting our booth today!</strong></p>
    <p><strong>We'll be in touch soon!</strong></p>
    <p style="margin-top: 20px;">Our mission is engineering the critical communication technologies that keep essential infrastructure running in Japan.</p>
    <p><strong>Join us in Japan and grow with us!</strong></p>
    <p><strong>We guide you and we learn together!</strong></p>
    <div style="margin-top: 30px;">
      <p style="margin-bottom: 5px;">Yours sincerely,</p>
      <p style="margin-bottom: 5px;"><strong>Gentaro Sogo</strong></p>
      <p style="margin-bottom: 5px;"><strong>CEO Kyowa Technologies Co., Ltd.</strong></p>
      <p style="margin-bottom: 5px;">Continued contact: <a href="mailto:r-hirata@star.kyotec.co.jp">r-hirata@star.kyotec.co.jp</a></p>
    </div>
  </div>
</div>
`))

// RenderBody renders the confirmation HTML body for a submitter.
func RenderBody(displayName string) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, struct{ DisplayName string }{DisplayName: displayName})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildConfirmation assembles the full RFC 5322 message for one
// recipient. Non-ASCII header values are Q-encoded.
func buildConfirmation(from, fromName, recipient, displayName string) ([]byte, error) {
	body, err := RenderBody(displayName)
	if err != nil {
		return nil, err
	}

	sender := from
	if fromName != "" {
		sender = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", sender))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject)))
	sb.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return []byte(sb.String()), nil
}
